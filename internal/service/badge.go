package service

import (
	"context"
	"strings"
	"time"

	"fanfare-backend/internal/domain"
	"fanfare-backend/pkg/utils"
)

type BadgeService struct {
	store domain.Store
	audit *ActivityService
}

func NewBadgeService(store domain.Store, audit *ActivityService) *BadgeService {
	return &BadgeService{store: store, audit: audit}
}

type BadgeDefinitionInput struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IconURL     string `json:"iconUrl"`
}

func (s *BadgeService) CreateDefinition(ctx context.Context, in BadgeDefinitionInput) (*domain.BadgeDefinition, error) {
	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if slug == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("slug and name are required")
	}
	if existing, err := s.store.Badges().FindDefinitionBySlug(ctx, slug); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.Conflict("badge slug already exists")
	}
	d := &domain.BadgeDefinition{
		ID:          utils.NewID(),
		Slug:        slug,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IconURL:     in.IconURL,
	}
	if err := s.store.Badges().CreateDefinition(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *BadgeService) ListDefinitions(ctx context.Context) ([]domain.BadgeDefinition, error) {
	return s.store.Badges().ListDefinitions(ctx)
}

// Award 给成员颁发徽章；同一徽章对同一成员只能发一次
func (s *BadgeService) Award(ctx context.Context, userID, slug, actorID string) (*domain.Badge, error) {
	u, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("user not found")
	}
	if u.Status == domain.UserStatusDeleted {
		return nil, domain.InvalidState("user is archived")
	}

	def, err := s.store.Badges().FindDefinitionBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, domain.NotFound("badge definition not found")
	}

	b := &domain.Badge{
		ID:           utils.NewID(),
		UserID:       userID,
		DefinitionID: def.ID,
		AwardedBy:    actorID,
		AwardedAt:    time.Now(),
	}
	if err := s.store.Badges().Award(ctx, b); err != nil {
		if isDupKey(err) {
			return nil, domain.Conflict("badge already awarded")
		}
		return nil, err
	}

	s.audit.Record(ctx, domain.ActivityBadgeAwarded,
		"Badge awarded",
		def.Name+" awarded to "+u.FullName(),
		&userID, &actorID,
		domain.JSONMap{"badge": def.Slug})
	b.Definition = *def
	return b, nil
}

func (s *BadgeService) ListByUser(ctx context.Context, userID string) ([]domain.Badge, error) {
	return s.store.Badges().ListByUser(ctx, userID)
}
