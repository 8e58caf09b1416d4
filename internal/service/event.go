package service

import (
	"context"
	"strings"
	"time"

	corecache "fanfare-backend/internal/core/cache"
	"fanfare-backend/internal/domain"
	"fanfare-backend/pkg/utils"
)

const (
	cacheKeyFeed  = "events:feed"
	cacheKeyStats = "content:stats"
)

type EventService struct {
	store   domain.Store
	cache   *corecache.Cache
	audit   *ActivityService
	feedTTL time.Duration
}

func NewEventService(store domain.Store, c *corecache.Cache, audit *ActivityService, feedTTL time.Duration) *EventService {
	return &EventService{store: store, cache: c, audit: audit, feedTTL: feedTTL}
}

// Feed 公开日程：已发布、未开始，升序；redis 读穿缓存
func (s *EventService) Feed(ctx context.Context) ([]domain.Event, error) {
	if s.cache == nil {
		return s.store.Events().ListUpcoming(ctx, time.Now(), 50)
	}
	out, err := corecache.GetOrLoadJSON[[]domain.Event](s.cache, ctx, cacheKeyFeed, s.feedTTL,
		func(ctx context.Context) (*[]domain.Event, error) {
			events, err := s.store.Events().ListUpcoming(ctx, time.Now(), 50)
			if err != nil {
				return nil, err
			}
			return &events, nil
		})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return *out, nil
}

type EventInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartsAt    time.Time  `json:"startsAt"`
	EndsAt      *time.Time `json:"endsAt"`
	VenueID     *string    `json:"venueId"`
}

func (in *EventInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Invalid("title is required")
	}
	if in.StartsAt.IsZero() {
		return domain.Invalid("start time is required")
	}
	return nil
}

func (s *EventService) Create(ctx context.Context, in EventInput, actorID string) (*domain.Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.VenueID != nil {
		v, err := s.store.Venues().FindByID(ctx, *in.VenueID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, domain.NotFound("venue not found")
		}
	}
	e := &domain.Event{
		ID:          utils.NewID(),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
		VenueID:     in.VenueID,
		CreatedBy:   actorID,
	}
	if err := s.store.Events().Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EventService) Update(ctx context.Context, id string, in EventInput) (*domain.Event, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	e, err := s.store.Events().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.NotFound("event not found")
	}
	e.Title = strings.TrimSpace(in.Title)
	e.Description = in.Description
	e.StartsAt = in.StartsAt
	e.EndsAt = in.EndsAt
	e.VenueID = in.VenueID
	e.Venue = nil
	if err := s.store.Events().Update(ctx, e); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return e, nil
}

func (s *EventService) Publish(ctx context.Context, id, actorID string) error {
	e, err := s.store.Events().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.NotFound("event not found")
	}
	if e.Published {
		return domain.InvalidState("already published")
	}
	e.Published = true
	if err := s.store.Events().Update(ctx, e); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.audit.Record(ctx, domain.ActivityEventPublished,
		"Event published", e.Title, nil, &actorID,
		domain.JSONMap{"eventId": e.ID})
	return nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	ok, err := s.store.Events().Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("event not found")
	}
	s.invalidate(ctx)
	return nil
}

func (s *EventService) List(ctx context.Context, offset, limit int) ([]domain.Event, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.Events().List(ctx, offset, limit)
}

// --- 场地 ---

type VenueInput struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Capacity int    `json:"capacity"`
	Notes    string `json:"notes"`
}

func (s *EventService) CreateVenue(ctx context.Context, in VenueInput) (*domain.Venue, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("name is required")
	}
	v := &domain.Venue{
		ID:       utils.NewID(),
		Name:     strings.TrimSpace(in.Name),
		Address:  in.Address,
		City:     in.City,
		Capacity: in.Capacity,
		Notes:    in.Notes,
	}
	if err := s.store.Venues().Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *EventService) UpdateVenue(ctx context.Context, id string, in VenueInput) (*domain.Venue, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("name is required")
	}
	v, err := s.store.Venues().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.NotFound("venue not found")
	}
	v.Name = strings.TrimSpace(in.Name)
	v.Address = in.Address
	v.City = in.City
	v.Capacity = in.Capacity
	v.Notes = in.Notes
	if err := s.store.Venues().Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *EventService) DeleteVenue(ctx context.Context, id string) error {
	ok, err := s.store.Venues().Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("venue not found")
	}
	return nil
}

func (s *EventService) ListVenues(ctx context.Context, offset, limit int) ([]domain.Venue, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.Venues().List(ctx, offset, limit)
}

func (s *EventService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, cacheKeyFeed, cacheKeyStats)
	}
}
