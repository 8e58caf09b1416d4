package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"fanfare-backend/internal/domain"
	"fanfare-backend/pkg/utils"
)

type NewsletterService struct {
	store  domain.Store
	mailer Mailer
	audit  *ActivityService
	log    *zap.Logger
}

func NewNewsletterService(store domain.Store, mailer Mailer, audit *ActivityService, log *zap.Logger) *NewsletterService {
	return &NewsletterService{store: store, mailer: mailer, audit: audit, log: log}
}

// Subscribe 幂等：已退订的重新激活，已激活的直接返回
func (s *NewsletterService) Subscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Invalid("a valid email is required")
	}

	existing, err := s.store.Newsletter().FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.Active() {
			return nil
		}
		existing.UnsubscribedAt = nil
		existing.SubscribedAt = time.Now()
		return s.store.Newsletter().Update(ctx, existing)
	}

	return s.store.Newsletter().Create(ctx, &domain.NewsletterSubscription{
		ID:           utils.NewID(),
		Email:        email,
		SubscribedAt: time.Now(),
	})
}

func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := s.store.Newsletter().FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.NotFound("not subscribed")
	}
	if !existing.Active() {
		return nil
	}
	now := time.Now()
	existing.UnsubscribedAt = &now
	return s.store.Newsletter().Update(ctx, existing)
}

func (s *NewsletterService) ListSubscribers(ctx context.Context, offset, limit int) ([]domain.NewsletterSubscription, int64, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.store.Newsletter().List(ctx, offset, limit)
}

// SendIssue 向全部活跃订阅者投递；单个收件人失败只记日志不中断
func (s *NewsletterService) SendIssue(ctx context.Context, subject, body, actorID string) (sent, failed int, err error) {
	subject = strings.TrimSpace(subject)
	if subject == "" || strings.TrimSpace(body) == "" {
		return 0, 0, domain.Invalid("subject and body are required")
	}

	subs, err := s.store.Newsletter().ListActive(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, sub := range subs {
		if mailErr := s.mailer.SendNewsletterIssue(ctx, sub.Email, subject, body); mailErr != nil {
			failed++
			s.log.Warn("newsletter delivery failed",
				zap.String("email", sub.Email), zap.Error(mailErr))
			continue
		}
		sent++
	}

	s.audit.Record(ctx, domain.ActivityNewsletterSent,
		"Newsletter sent", subject, nil, &actorID,
		domain.JSONMap{"sent": sent, "failed": failed})
	return sent, failed, nil
}
