package domain

import (
	"context"
	"time"
)

type NewsletterSubscription struct {
	ID             string     `gorm:"primaryKey;size:36" json:"id"`
	Email          string     `gorm:"uniqueIndex;size:191" json:"email"`
	SubscribedAt   time.Time  `json:"subscribedAt"`
	UnsubscribedAt *time.Time `json:"unsubscribedAt,omitempty"`
}

func (NewsletterSubscription) TableName() string { return "newsletter_subscriptions" }

func (s *NewsletterSubscription) Active() bool { return s.UnsubscribedAt == nil }

type NewsletterRepository interface {
	Create(ctx context.Context, s *NewsletterSubscription) error
	FindByEmail(ctx context.Context, email string) (*NewsletterSubscription, error)
	Update(ctx context.Context, s *NewsletterSubscription) error
	List(ctx context.Context, offset, limit int) ([]NewsletterSubscription, int64, error)
	ListActive(ctx context.Context) ([]NewsletterSubscription, error)
}
