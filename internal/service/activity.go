package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fanfare-backend/internal/domain"
	"fanfare-backend/pkg/utils"
)

// ActivityService 审计日志：工作流侧只追加；后台侧可检索、归档 post 类条目。
type ActivityService struct {
	store domain.Store
	log   *zap.Logger
}

func NewActivityService(store domain.Store, log *zap.Logger) *ActivityService {
	return &ActivityService{store: store, log: log}
}

// Record 旁路写入：失败只记日志，绝不向调用方冒泡
func (s *ActivityService) Record(ctx context.Context, typ domain.ActivityType, title, description string, subjectID, actorID *string, meta domain.JSONMap) {
	a := &domain.Activity{
		ID:          utils.NewID(),
		Type:        typ,
		Title:       title,
		Description: description,
		UserID:      subjectID,
		CreatedBy:   actorID,
		Metadata:    meta,
	}
	if err := s.store.Activities().Create(ctx, a); err != nil {
		s.log.Warn("activity write failed",
			zap.String("type", string(typ)),
			zap.Error(err))
	}
}

func (s *ActivityService) List(ctx context.Context, f domain.ActivityListFilter) ([]domain.Activity, int64, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	return s.store.Activities().List(ctx, f)
}

func (s *ActivityService) Archive(ctx context.Context, id, actorID, reason string) error {
	a, err := s.store.Activities().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.NotFound("activity not found")
	}
	ok, err := s.store.Activities().SetArchived(ctx, id, true, actorID, reason, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return domain.InvalidState("already archived")
	}
	return nil
}

func (s *ActivityService) Unarchive(ctx context.Context, id, actorID string) error {
	a, err := s.store.Activities().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.NotFound("activity not found")
	}
	ok, err := s.store.Activities().SetArchived(ctx, id, false, actorID, "", time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return domain.InvalidState("not archived")
	}
	return nil
}
