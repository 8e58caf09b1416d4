package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"fanfare-backend/internal/domain"
)

type VenueRepo struct{ db *gorm.DB }

func NewVenueRepo(db *gorm.DB) *VenueRepo { return &VenueRepo{db: db} }

func (r *VenueRepo) Create(ctx context.Context, v *domain.Venue) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VenueRepo) FindByID(ctx context.Context, id string) (*domain.Venue, error) {
	var v domain.Venue
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VenueRepo) List(ctx context.Context, offset, limit int) ([]domain.Venue, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Venue{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var venues []domain.Venue
	if err := q.Order("name ASC").Offset(offset).Limit(limit).Find(&venues).Error; err != nil {
		return nil, 0, err
	}
	return venues, total, nil
}

func (r *VenueRepo) Update(ctx context.Context, v *domain.Venue) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *VenueRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Venue{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

type EventRepo struct{ db *gorm.DB }

func NewEventRepo(db *gorm.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) Create(ctx context.Context, e *domain.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EventRepo) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	var e domain.Event
	err := r.db.WithContext(ctx).Preload("Venue").First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepo) List(ctx context.Context, offset, limit int) ([]domain.Event, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Event{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var events []domain.Event
	if err := q.Preload("Venue").Order("starts_at DESC").Offset(offset).Limit(limit).Find(&events).Error; err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *EventRepo) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]domain.Event, error) {
	var events []domain.Event
	err := r.db.WithContext(ctx).
		Preload("Venue").
		Where("published = ? AND starts_at >= ?", true, from).
		Order("starts_at ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *EventRepo) Update(ctx context.Context, e *domain.Event) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *EventRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Event{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
