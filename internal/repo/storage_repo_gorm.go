package repo

import (
	"context"

	"gorm.io/gorm"

	"fanfare-backend/internal/domain"
)

type StorageObjectRepo struct{ db *gorm.DB }

func NewStorageObjectRepo(db *gorm.DB) *StorageObjectRepo { return &StorageObjectRepo{db: db} }

func (r *StorageObjectRepo) Create(ctx context.Context, o *domain.StorageObject) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *StorageObjectRepo) List(ctx context.Context, offset, limit int) ([]domain.StorageObject, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.StorageObject{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var objs []domain.StorageObject
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&objs).Error; err != nil {
		return nil, 0, err
	}
	return objs, total, nil
}
