package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"fanfare-backend/internal/domain"
)

// memStore 内存版 Store，镜像 gorm 仓储的条件更新语义，供服务层测试用
type memStore struct {
	mu sync.Mutex

	users       map[string]*domain.User
	regs        map[string]*domain.RegistrationRequest // key = userID
	instruments map[string]domain.Instrument
	activities  []*domain.Activity
	subs        map[string]*domain.NewsletterSubscription // key = email
	venues      map[string]*domain.Venue
	events      map[string]*domain.Event
	badgeDefs   map[string]*domain.BadgeDefinition // key = slug
	badges      []*domain.Badge

	txErr error // 非 nil 时 WithTx 直接失败，模拟提交失败
}

func newMemStore() *memStore {
	return &memStore{
		users:       map[string]*domain.User{},
		regs:        map[string]*domain.RegistrationRequest{},
		instruments: map[string]domain.Instrument{},
		subs:        map[string]*domain.NewsletterSubscription{},
		venues:      map[string]*domain.Venue{},
		events:      map[string]*domain.Event{},
		badgeDefs:   map[string]*domain.BadgeDefinition{},
	}
}

func (s *memStore) Users() domain.UserRepository                        { return &memUsers{s} }
func (s *memStore) Registrations() domain.RegistrationRequestRepository { return &memRegs{s} }
func (s *memStore) Instruments() domain.InstrumentRepository            { return &memInstruments{s} }
func (s *memStore) Activities() domain.ActivityRepository               { return &memActivities{s} }
func (s *memStore) Newsletter() domain.NewsletterRepository             { return &memNewsletter{s} }
func (s *memStore) Venues() domain.VenueRepository                      { return &memVenues{s} }
func (s *memStore) Events() domain.EventRepository                      { return &memEvents{s} }
func (s *memStore) Badges() domain.BadgeRepository                      { return &memBadges{s} }
func (s *memStore) StorageObjects() domain.StorageObjectRepository      { return nil }

func (s *memStore) WithTx(_ context.Context, fn func(domain.Store) error) error {
	if s.txErr != nil {
		return s.txErr
	}
	return fn(s)
}

func (s *memStore) seedInstrument(id, name string) {
	s.instruments[id] = domain.Instrument{ID: id, Name: name}
}

type memUsers struct{ s *memStore }

func (r *memUsers) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.Conflict("duplicate key value violates unique constraint")
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUsers) FindWithDetails(ctx context.Context, id string) (*domain.User, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil || u == nil {
		return u, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if reg, ok := r.s.regs[id]; ok {
		cp := *reg
		u.Registration = &cp
	}
	return u, nil
}

func (r *memUsers) List(_ context.Context, f domain.UserListFilter) ([]domain.User, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.User
	for _, u := range r.s.users {
		if !f.WithArchived && u.Status == domain.UserStatusDeleted {
			continue
		}
		if f.Status != "" && u.Status != f.Status {
			continue
		}
		if f.Query != "" && !strings.Contains(u.Email, f.Query) {
			continue
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *memUsers) ListPending(_ context.Context) ([]domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.User
	for _, u := range r.s.users {
		if u.Status != domain.UserStatusPending {
			continue
		}
		cp := *u
		if reg, ok := r.s.regs[u.ID]; ok {
			rc := *reg
			cp.Registration = &rc
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memUsers) ListTeam(_ context.Context) ([]domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.User
	for _, u := range r.s.users {
		if u.Status == domain.UserStatusCurrent {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out, nil
}

func (r *memUsers) Update(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *memUsers) UpdateStatusIfPending(_ context.Context, id string, to domain.UserStatus, extra map[string]any) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok || u.Status != domain.UserStatusPending {
		return false, nil
	}
	u.Status = to
	if pw, ok := extra["password_hash"].(string); ok {
		u.PasswordHash = pw
	}
	return true, nil
}

func (r *memUsers) Archive(_ context.Context, id, byID string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok || u.Status == domain.UserStatusDeleted {
		return false, nil
	}
	u.Status = domain.UserStatusDeleted
	u.ArchivedAt = &at
	u.ArchivedBy = &byID
	return true, nil
}

func (r *memUsers) CountByStatus(_ context.Context, status domain.UserStatus) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, u := range r.s.users {
		if u.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *memUsers) ReplaceSocialLinks(_ context.Context, userID string, links []domain.SocialLink) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[userID]; ok {
		u.SocialLinks = links
	}
	return nil
}

func (r *memUsers) AssignRole(_ context.Context, userID string, role domain.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[userID]; ok {
		u.Roles = append(u.Roles, role)
	}
	return nil
}

type memRegs struct{ s *memStore }

func (r *memRegs) Create(_ context.Context, req *domain.RegistrationRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *req
	r.s.regs[req.UserID] = &cp
	return nil
}

func (r *memRegs) FindByUserID(_ context.Context, userID string) (*domain.RegistrationRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.regs[userID]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *memRegs) Decide(_ context.Context, userID string, to domain.RegistrationStatus, reason, byID string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.regs[userID]
	if !ok || req.Status != domain.RegistrationStatusPending {
		return false, nil
	}
	req.Status = to
	req.RejectionReason = reason
	req.DecidedAt = &at
	req.DecidedBy = &byID
	return true, nil
}

type memInstruments struct{ s *memStore }

func (r *memInstruments) List(_ context.Context) ([]domain.Instrument, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Instrument
	for _, ins := range r.s.instruments {
		out = append(out, ins)
	}
	return out, nil
}

func (r *memInstruments) FindByIDs(_ context.Context, ids []string) ([]domain.Instrument, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Instrument
	for _, id := range ids {
		if ins, ok := r.s.instruments[id]; ok {
			out = append(out, ins)
		}
	}
	return out, nil
}

type memActivities struct{ s *memStore }

func (r *memActivities) Create(_ context.Context, a *domain.Activity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *a
	r.s.activities = append(r.s.activities, &cp)
	return nil
}

func (r *memActivities) FindByID(_ context.Context, id string) (*domain.Activity, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.activities {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memActivities) List(_ context.Context, f domain.ActivityListFilter) ([]domain.Activity, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Activity
	for _, a := range r.s.activities {
		if f.Type != "" && a.Type != f.Type {
			continue
		}
		if !f.WithArchived && a.IsArchived {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (r *memActivities) SetArchived(_ context.Context, id string, archived bool, byID, reason string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.activities {
		if a.ID == id && a.IsArchived != archived {
			a.IsArchived = archived
			if archived {
				a.ArchivedAt = &at
				a.ArchivedBy = &byID
				a.ArchiveReason = reason
			} else {
				a.ArchivedAt = nil
				a.ArchivedBy = nil
				a.ArchiveReason = ""
			}
			return true, nil
		}
	}
	return false, nil
}

type memNewsletter struct{ s *memStore }

func (r *memNewsletter) Create(_ context.Context, sub *domain.NewsletterSubscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *sub
	r.s.subs[sub.Email] = &cp
	return nil
}

func (r *memNewsletter) FindByEmail(_ context.Context, email string) (*domain.NewsletterSubscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sub, ok := r.s.subs[email]
	if !ok {
		return nil, nil
	}
	cp := *sub
	return &cp, nil
}

func (r *memNewsletter) Update(_ context.Context, sub *domain.NewsletterSubscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *sub
	r.s.subs[sub.Email] = &cp
	return nil
}

func (r *memNewsletter) List(_ context.Context, offset, limit int) ([]domain.NewsletterSubscription, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.NewsletterSubscription
	for _, sub := range r.s.subs {
		out = append(out, *sub)
	}
	return out, int64(len(out)), nil
}

func (r *memNewsletter) ListActive(_ context.Context) ([]domain.NewsletterSubscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.NewsletterSubscription
	for _, sub := range r.s.subs {
		if sub.Active() {
			out = append(out, *sub)
		}
	}
	return out, nil
}

type memVenues struct{ s *memStore }

func (r *memVenues) Create(_ context.Context, v *domain.Venue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *v
	r.s.venues[v.ID] = &cp
	return nil
}

func (r *memVenues) FindByID(_ context.Context, id string) (*domain.Venue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.venues[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *memVenues) List(_ context.Context, offset, limit int) ([]domain.Venue, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Venue
	for _, v := range r.s.venues {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *memVenues) Update(_ context.Context, v *domain.Venue) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *v
	r.s.venues[v.ID] = &cp
	return nil
}

func (r *memVenues) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.venues[id]; !ok {
		return false, nil
	}
	delete(r.s.venues, id)
	return true, nil
}

type memEvents struct{ s *memStore }

func (r *memEvents) Create(_ context.Context, e *domain.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *e
	r.s.events[e.ID] = &cp
	return nil
}

func (r *memEvents) FindByID(_ context.Context, id string) (*domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *memEvents) List(_ context.Context, offset, limit int) ([]domain.Event, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Event
	for _, e := range r.s.events {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *memEvents) ListUpcoming(_ context.Context, from time.Time, limit int) ([]domain.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Event
	for _, e := range r.s.events {
		if e.Published && !e.StartsAt.Before(from) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memEvents) Update(_ context.Context, e *domain.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *e
	r.s.events[e.ID] = &cp
	return nil
}

func (r *memEvents) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[id]; !ok {
		return false, nil
	}
	delete(r.s.events, id)
	return true, nil
}

type memBadges struct{ s *memStore }

func (r *memBadges) CreateDefinition(_ context.Context, d *domain.BadgeDefinition) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *d
	r.s.badgeDefs[d.Slug] = &cp
	return nil
}

func (r *memBadges) FindDefinitionBySlug(_ context.Context, slug string) (*domain.BadgeDefinition, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.badgeDefs[slug]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *memBadges) ListDefinitions(_ context.Context) ([]domain.BadgeDefinition, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.BadgeDefinition
	for _, d := range r.s.badgeDefs {
		out = append(out, *d)
	}
	return out, nil
}

func (r *memBadges) Award(_ context.Context, b *domain.Badge) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.badges {
		if existing.UserID == b.UserID && existing.DefinitionID == b.DefinitionID {
			return domain.Conflict("duplicate key value violates unique constraint")
		}
	}
	cp := *b
	r.s.badges = append(r.s.badges, &cp)
	return nil
}

func (r *memBadges) ListByUser(_ context.Context, userID string) ([]domain.Badge, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Badge
	for _, b := range r.s.badges {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

// fakeMailer 记录投递并可注入失败
type fakeMailer struct {
	mu         sync.Mutex
	approvals  []string // 收到审批通过信的邮箱
	rejections []string
	issues     []string
	fail       bool
	failFor    map[string]bool // 指定邮箱投递失败
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failFor: map[string]bool{}}
}

func (m *fakeMailer) SendApprovalEmail(_ context.Context, to, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail || m.failFor[to] {
		return errSMTP
	}
	m.approvals = append(m.approvals, to)
	return nil
}

func (m *fakeMailer) SendRejectionEmail(_ context.Context, to, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail || m.failFor[to] {
		return errSMTP
	}
	m.rejections = append(m.rejections, to)
	return nil
}

func (m *fakeMailer) SendNewsletterIssue(_ context.Context, to, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail || m.failFor[to] {
		return errSMTP
	}
	m.issues = append(m.issues, to)
	return nil
}

var errSMTP = domain.WrapError(domain.ErrCodeInternal, "smtp unavailable", nil)
