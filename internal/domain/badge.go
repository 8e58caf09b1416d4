package domain

import (
	"context"
	"time"
)

type BadgeDefinition struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Slug        string    `gorm:"uniqueIndex;size:64" json:"slug"`
	Name        string    `gorm:"size:128" json:"name"`
	Description string    `gorm:"size:512" json:"description"`
	IconURL     string    `gorm:"size:255" json:"iconUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (BadgeDefinition) TableName() string { return "badge_definitions" }

type Badge struct {
	ID           string          `gorm:"primaryKey;size:36" json:"id"`
	UserID       string          `gorm:"size:36;index:idx_badge_user_def,unique" json:"userId"`
	DefinitionID string          `gorm:"size:36;index:idx_badge_user_def,unique" json:"definitionId"`
	Definition   BadgeDefinition `gorm:"foreignKey:DefinitionID" json:"definition"`
	AwardedBy    string          `gorm:"size:36" json:"awardedBy"`
	AwardedAt    time.Time       `json:"awardedAt"`
}

func (Badge) TableName() string { return "badges" }

type BadgeRepository interface {
	CreateDefinition(ctx context.Context, d *BadgeDefinition) error
	FindDefinitionBySlug(ctx context.Context, slug string) (*BadgeDefinition, error)
	ListDefinitions(ctx context.Context) ([]BadgeDefinition, error)
	Award(ctx context.Context, b *Badge) error
	ListByUser(ctx context.Context, userID string) ([]Badge, error)
}
