package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"fanfare-backend/internal/domain"
)

type ActivityRepo struct{ db *gorm.DB }

func NewActivityRepo(db *gorm.DB) *ActivityRepo { return &ActivityRepo{db: db} }

func (r *ActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ActivityRepo) FindByID(ctx context.Context, id string) (*domain.Activity, error) {
	var a domain.Activity
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ActivityRepo) List(ctx context.Context, f domain.ActivityListFilter) ([]domain.Activity, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Activity{})
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if !f.WithArchived {
		q = q.Where("is_archived = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []domain.Activity
	if err := q.Order("created_at DESC").Offset(f.Offset).Limit(f.Limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ActivityRepo) SetArchived(ctx context.Context, id string, archived bool, byID, reason string, at time.Time) (bool, error) {
	updates := map[string]any{
		"is_archived":    archived,
		"archived_at":    nil,
		"archived_by":    nil,
		"archive_reason": "",
	}
	if archived {
		updates["archived_at"] = at
		updates["archived_by"] = byID
		updates["archive_reason"] = reason
	}
	res := r.db.WithContext(ctx).Model(&domain.Activity{}).
		Where("id = ? AND is_archived = ?", id, !archived).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
