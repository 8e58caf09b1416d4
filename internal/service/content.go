package service

import (
	"context"
	"time"

	corecache "fanfare-backend/internal/core/cache"
	"fanfare-backend/internal/domain"
)

// HomeStats 首页展示的汇总数字
type HomeStats struct {
	ActiveMembers  int64 `json:"activeMembers"`
	UpcomingEvents int   `json:"upcomingEvents"`
}

type ContentService struct {
	store    domain.Store
	cache    *corecache.Cache
	statsTTL time.Duration
}

func NewContentService(store domain.Store, c *corecache.Cache, statsTTL time.Duration) *ContentService {
	return &ContentService{store: store, cache: c, statsTTL: statsTTL}
}

func (s *ContentService) Stats(ctx context.Context) (HomeStats, error) {
	load := func(ctx context.Context) (*HomeStats, error) {
		members, err := s.store.Users().CountByStatus(ctx, domain.UserStatusCurrent)
		if err != nil {
			return nil, err
		}
		events, err := s.store.Events().ListUpcoming(ctx, time.Now(), 50)
		if err != nil {
			return nil, err
		}
		return &HomeStats{ActiveMembers: members, UpcomingEvents: len(events)}, nil
	}
	if s.cache == nil {
		out, err := load(ctx)
		if err != nil {
			return HomeStats{}, err
		}
		return *out, nil
	}
	out, err := corecache.GetOrLoadJSON[HomeStats](s.cache, ctx, cacheKeyStats, s.statsTTL, load)
	if err != nil {
		return HomeStats{}, err
	}
	return *out, nil
}
