package domain

import (
	"context"
	"time"
)

type Venue struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:128" json:"name"`
	Address   string    `gorm:"size:255" json:"address"`
	City      string    `gorm:"size:64" json:"city"`
	Capacity  int       `json:"capacity"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Venue) TableName() string { return "venues" }

type Event struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Title       string     `gorm:"size:191" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	StartsAt    time.Time  `gorm:"index" json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt,omitempty"`
	VenueID     *string    `gorm:"size:36" json:"venueId,omitempty"`
	Venue       *Venue     `json:"venue,omitempty"`
	Published   bool       `gorm:"index" json:"published"`
	CreatedBy   string     `gorm:"size:36" json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Event) TableName() string { return "events" }

type VenueRepository interface {
	Create(ctx context.Context, v *Venue) error
	FindByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context, offset, limit int) ([]Venue, int64, error)
	Update(ctx context.Context, v *Venue) error
	Delete(ctx context.Context, id string) (bool, error)
}

type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	FindByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, offset, limit int) ([]Event, int64, error)
	// ListUpcoming 公开日程：已发布、未开始，按开始时间升序
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]Event, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id string) (bool, error)
}
