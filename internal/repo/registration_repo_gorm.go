package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"fanfare-backend/internal/domain"
)

type RegistrationRepo struct{ db *gorm.DB }

func NewRegistrationRepo(db *gorm.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

func (r *RegistrationRepo) Create(ctx context.Context, reg *domain.RegistrationRequest) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *RegistrationRepo) FindByUserID(ctx context.Context, userID string) (*domain.RegistrationRequest, error) {
	var reg domain.RegistrationRequest
	err := r.db.WithContext(ctx).First(&reg, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *RegistrationRepo) Decide(ctx context.Context, userID string, to domain.RegistrationStatus, reason, byID string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.RegistrationRequest{}).
		Where("user_id = ? AND status = ?", userID, domain.RegistrationStatusPending).
		Updates(map[string]any{
			"status":           to,
			"rejection_reason": reason,
			"decided_at":       at,
			"decided_by":       byID,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
