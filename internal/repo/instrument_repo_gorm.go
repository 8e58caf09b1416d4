package repo

import (
	"context"

	"gorm.io/gorm"

	"fanfare-backend/internal/domain"
)

type InstrumentRepo struct{ db *gorm.DB }

func NewInstrumentRepo(db *gorm.DB) *InstrumentRepo { return &InstrumentRepo{db: db} }

func (r *InstrumentRepo) List(ctx context.Context) ([]domain.Instrument, error) {
	var ins []domain.Instrument
	err := r.db.WithContext(ctx).Order("family ASC, name ASC").Find(&ins).Error
	return ins, err
}

func (r *InstrumentRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Instrument, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ins []domain.Instrument
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ins).Error
	return ins, err
}
