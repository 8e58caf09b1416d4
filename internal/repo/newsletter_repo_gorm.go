package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fanfare-backend/internal/domain"
)

type NewsletterRepo struct{ db *gorm.DB }

func NewNewsletterRepo(db *gorm.DB) *NewsletterRepo { return &NewsletterRepo{db: db} }

func (r *NewsletterRepo) Create(ctx context.Context, s *domain.NewsletterSubscription) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *NewsletterRepo) FindByEmail(ctx context.Context, email string) (*domain.NewsletterSubscription, error) {
	var s domain.NewsletterSubscription
	err := r.db.WithContext(ctx).First(&s, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *NewsletterRepo) Update(ctx context.Context, s *domain.NewsletterSubscription) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *NewsletterRepo) List(ctx context.Context, offset, limit int) ([]domain.NewsletterSubscription, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.NewsletterSubscription{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var subs []domain.NewsletterSubscription
	if err := q.Order("subscribed_at DESC").Offset(offset).Limit(limit).Find(&subs).Error; err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

func (r *NewsletterRepo) ListActive(ctx context.Context) ([]domain.NewsletterSubscription, error) {
	var subs []domain.NewsletterSubscription
	err := r.db.WithContext(ctx).Where("unsubscribed_at IS NULL").Find(&subs).Error
	return subs, err
}
