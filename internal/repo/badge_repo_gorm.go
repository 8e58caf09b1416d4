package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fanfare-backend/internal/domain"
)

type BadgeRepo struct{ db *gorm.DB }

func NewBadgeRepo(db *gorm.DB) *BadgeRepo { return &BadgeRepo{db: db} }

func (r *BadgeRepo) CreateDefinition(ctx context.Context, d *domain.BadgeDefinition) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *BadgeRepo) FindDefinitionBySlug(ctx context.Context, slug string) (*domain.BadgeDefinition, error) {
	var d domain.BadgeDefinition
	err := r.db.WithContext(ctx).First(&d, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *BadgeRepo) ListDefinitions(ctx context.Context) ([]domain.BadgeDefinition, error) {
	var defs []domain.BadgeDefinition
	err := r.db.WithContext(ctx).Order("slug ASC").Find(&defs).Error
	return defs, err
}

func (r *BadgeRepo) Award(ctx context.Context, b *domain.Badge) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BadgeRepo) ListByUser(ctx context.Context, userID string) ([]domain.Badge, error) {
	var badges []domain.Badge
	err := r.db.WithContext(ctx).
		Preload("Definition").
		Where("user_id = ?", userID).
		Order("awarded_at DESC").
		Find(&badges).Error
	return badges, err
}
