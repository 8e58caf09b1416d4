package service

import (
	"context"
	"strings"

	"fanfare-backend/internal/domain"
	"fanfare-backend/pkg/utils"
)

type MemberService struct {
	store domain.Store
}

func NewMemberService(store domain.Store) *MemberService {
	return &MemberService{store: store}
}

func (s *MemberService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.store.Users().FindWithDetails(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("user not found")
	}
	return u, nil
}

type ProfileUpdate struct {
	Phone       string              `json:"phone"`
	Pronouns    string              `json:"pronouns"`
	PhotoURL    string              `json:"photoUrl"`
	SocialLinks []domain.SocialLink `json:"socialLinks"`
}

// UpdateProfile 本人可改的字段；社交链接整组替换
func (s *MemberService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*domain.User, error) {
	u, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("user not found")
	}
	if u.Status != domain.UserStatusCurrent {
		return nil, domain.InvalidState("account is not active")
	}

	// 校验先于任何写入，报错时不留半截更新
	links := make([]domain.SocialLink, 0, len(in.SocialLinks))
	for _, l := range in.SocialLinks {
		if strings.TrimSpace(l.URL) == "" {
			return nil, domain.Invalid("social link url is required")
		}
		links = append(links, domain.SocialLink{
			ID:       utils.NewID(),
			UserID:   userID,
			Platform: strings.TrimSpace(l.Platform),
			URL:      strings.TrimSpace(l.URL),
		})
	}

	u.Phone = strings.TrimSpace(in.Phone)
	u.Pronouns = strings.TrimSpace(in.Pronouns)
	u.PhotoURL = strings.TrimSpace(in.PhotoURL)
	err = s.store.WithTx(ctx, func(tx domain.Store) error {
		if err := tx.Users().Update(ctx, u); err != nil {
			return err
		}
		return tx.Users().ReplaceSocialLinks(ctx, userID, links)
	})
	if err != nil {
		return nil, err
	}
	return s.Profile(ctx, userID)
}

// TeamMember 公开团队页投影，不暴露联系方式
type TeamMember struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Pronouns    string   `json:"pronouns,omitempty"`
	Promotion   string   `json:"promotion"`
	PhotoURL    string   `json:"photoUrl,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	Instruments []string `json:"instruments,omitempty"`
}

func (s *MemberService) Team(ctx context.Context) ([]TeamMember, error) {
	users, err := s.store.Users().ListTeam(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TeamMember, 0, len(users))
	for _, u := range users {
		m := TeamMember{
			ID:        u.ID,
			Name:      u.FullName(),
			Pronouns:  u.Pronouns,
			Promotion: u.Promotion,
			PhotoURL:  u.PhotoURL,
		}
		for _, r := range u.Roles {
			m.Roles = append(m.Roles, r.Name)
		}
		for _, ui := range u.Instruments {
			m.Instruments = append(m.Instruments, ui.Instrument.Name)
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *MemberService) List(ctx context.Context, f domain.UserListFilter) ([]domain.User, int64, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	return s.store.Users().List(ctx, f)
}

func (s *MemberService) CountActive(ctx context.Context) (int64, error) {
	return s.store.Users().CountByStatus(ctx, domain.UserStatusCurrent)
}
