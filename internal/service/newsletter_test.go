package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fanfare-backend/internal/domain"
)

func newNewsletterFixture(t *testing.T) (*NewsletterService, *memStore, *fakeMailer) {
	t.Helper()
	store := newMemStore()
	mailer := newFakeMailer()
	audit := NewActivityService(store, zap.NewNop())
	return NewNewsletterService(store, mailer, audit, zap.NewNop()), store, mailer
}

func TestSubscribeIsIdempotent(t *testing.T) {
	svc, store, _ := newNewsletterFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Subscribe(ctx, " Fan@Example.Org "))
	require.NoError(t, svc.Subscribe(ctx, "fan@example.org"))

	sub := store.subs["fan@example.org"]
	require.NotNil(t, sub)
	assert.True(t, sub.Active())
	assert.Len(t, store.subs, 1)
}

func TestSubscribeRejectsBadEmail(t *testing.T) {
	svc, _, _ := newNewsletterFixture(t)
	err := svc.Subscribe(context.Background(), "not-an-email")
	assert.True(t, domain.IsCode(err, domain.ErrCodeInvalid), "got %v", err)
}

func TestUnsubscribeLifecycle(t *testing.T) {
	svc, store, _ := newNewsletterFixture(t)
	ctx := context.Background()

	err := svc.Unsubscribe(ctx, "ghost@example.org")
	assert.True(t, domain.IsCode(err, domain.ErrCodeNotFound), "got %v", err)

	require.NoError(t, svc.Subscribe(ctx, "fan@example.org"))
	require.NoError(t, svc.Unsubscribe(ctx, "fan@example.org"))
	assert.False(t, store.subs["fan@example.org"].Active())

	// 重复退订不报错
	require.NoError(t, svc.Unsubscribe(ctx, "fan@example.org"))

	// 重新订阅恢复活跃
	require.NoError(t, svc.Subscribe(ctx, "fan@example.org"))
	assert.True(t, store.subs["fan@example.org"].Active())
}

func TestSendIssueCountsFailures(t *testing.T) {
	svc, store, mailer := newNewsletterFixture(t)
	ctx := context.Background()

	for _, email := range []string{"a@x.fr", "b@x.fr", "c@x.fr"} {
		require.NoError(t, svc.Subscribe(ctx, email))
	}
	require.NoError(t, svc.Unsubscribe(ctx, "c@x.fr"))
	mailer.failFor["b@x.fr"] = true

	sent, failed, err := svc.SendIssue(ctx, "Concert de rentrée", "Save the date!", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, failed)
	assert.Equal(t, []string{"a@x.fr"}, mailer.issues)

	require.Len(t, store.activities, 1)
	assert.Equal(t, domain.ActivityNewsletterSent, store.activities[0].Type)
}

func TestSendIssueRequiresContent(t *testing.T) {
	svc, _, _ := newNewsletterFixture(t)
	_, _, err := svc.SendIssue(context.Background(), " ", "body", "admin-1")
	assert.True(t, domain.IsCode(err, domain.ErrCodeInvalid), "got %v", err)
}
