package service

import (
	"context"
	"strings"

	"fanfare-backend/internal/domain"
	"fanfare-backend/pkg/utils"
)

type AuthService struct {
	store domain.Store
}

func NewAuthService(store domain.Store) *AuthService {
	return &AuthService{store: store}
}

// Login 校验凭据；非 CURRENT 用户一律拒绝登录。
// 返回用户与会话角色（持有 admin 角色 → "admin"，否则 "member"）。
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, "", domain.NewError(domain.ErrCodeUnauthorized, "invalid credentials")
	}
	if u.Status != domain.UserStatusCurrent {
		return nil, "", domain.NewError(domain.ErrCodeForbidden, "account is not active")
	}

	full, err := s.store.Users().FindWithDetails(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	if full == nil {
		// 两次读之间记录被并发移除
		return nil, "", domain.NewError(domain.ErrCodeUnauthorized, "invalid credentials")
	}
	role := domain.RoleMember
	if full.HasRole(domain.RoleAdmin) {
		role = domain.RoleAdmin
	}
	return full, role, nil
}
