package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"fanfare-backend/internal/domain"
	"fanfare-backend/pkg/utils"
)

// RegistrationService 入会生命周期：提交 → 审批通过/驳回；归档独立于裁决分支。
// User 与 RegistrationRequest 的状态必须镜像推进，双写在同一事务里完成。
type RegistrationService struct {
	store  domain.Store
	audit  *ActivityService
	mailer Mailer
	log    *zap.Logger
}

func NewRegistrationService(store domain.Store, audit *ActivityService, mailer Mailer, log *zap.Logger) *RegistrationService {
	return &RegistrationService{store: store, audit: audit, mailer: mailer, log: log}
}

type InstrumentChoice struct {
	InstrumentID string            `json:"instrumentId"`
	SkillLevel   domain.SkillLevel `json:"skillLevel"`
}

type SubmitInput struct {
	FirstName  string             `json:"firstName"`
	LastName   string             `json:"lastName"`
	Email      string             `json:"email"`
	Password   string             `json:"password"`
	BirthDate  *time.Time         `json:"birthDate"`
	Phone      string             `json:"phone"`
	Pronouns   string             `json:"pronouns"`
	Promotion  string             `json:"promotion"`
	Motivation string             `json:"motivation"`
	Experience string             `json:"experience"`
	Instruments []InstrumentChoice `json:"instruments"`
}

func (in *SubmitInput) validate() error {
	switch {
	case strings.TrimSpace(in.FirstName) == "":
		return domain.Invalid("first name is required")
	case strings.TrimSpace(in.LastName) == "":
		return domain.Invalid("last name is required")
	case strings.TrimSpace(in.Email) == "" || !strings.Contains(in.Email, "@"):
		return domain.Invalid("a valid email is required")
	case len(in.Password) < 8:
		return domain.Invalid("password must be at least 8 characters")
	case in.BirthDate == nil:
		return domain.Invalid("birth date is required")
	case strings.TrimSpace(in.Promotion) == "":
		return domain.Invalid("promotion is required")
	}
	for _, c := range in.Instruments {
		if !c.SkillLevel.Valid() {
			return domain.Invalid("unknown skill level")
		}
	}
	return nil
}

// Submit 创建 PENDING 用户 + PENDING 申请 + 乐器选择，单事务落库
func (s *RegistrationService) Submit(ctx context.Context, in SubmitInput) (string, error) {
	if err := in.validate(); err != nil {
		return "", err
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if existing, err := s.store.Users().FindByEmail(ctx, email); err != nil {
		return "", err
	} else if existing != nil {
		return "", domain.Conflict("email already registered")
	}

	// 乐器 ID 必须在目录里
	ids := make([]string, 0, len(in.Instruments))
	for _, c := range in.Instruments {
		ids = append(ids, c.InstrumentID)
	}
	if len(ids) > 0 {
		found, err := s.store.Instruments().FindByIDs(ctx, ids)
		if err != nil {
			return "", err
		}
		if len(found) != len(ids) {
			return "", domain.Invalid("unknown instrument")
		}
	}

	userID := utils.NewID()
	u := &domain.User{
		ID:           userID,
		Email:        email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: utils.HashPassword(in.Password),
		Status:       domain.UserStatusPending,
		BirthDate:    in.BirthDate,
		Phone:        strings.TrimSpace(in.Phone),
		Pronouns:     strings.TrimSpace(in.Pronouns),
		Promotion:    strings.TrimSpace(in.Promotion),
	}
	for _, c := range in.Instruments {
		u.Instruments = append(u.Instruments, domain.UserInstrument{
			ID:           utils.NewID(),
			UserID:       userID,
			InstrumentID: c.InstrumentID,
			SkillLevel:   c.SkillLevel,
		})
	}

	err := s.store.WithTx(ctx, func(tx domain.Store) error {
		if err := tx.Users().Create(ctx, u); err != nil {
			if isDupKey(err) {
				return domain.Conflict("email already registered")
			}
			return err
		}
		return tx.Registrations().Create(ctx, &domain.RegistrationRequest{
			ID:         utils.NewID(),
			UserID:     userID,
			Motivation: in.Motivation,
			Experience: in.Experience,
			Status:     domain.RegistrationStatusPending,
		})
	})
	if err != nil {
		return "", err
	}
	return userID, nil
}

// Approve PENDING → CURRENT/ACCEPTED。事务内重读 + 条件更新：
// 并发裁决时先提交者生效，后到者拿到 InvalidState。
// 临时密码随状态翻转同事务落库，提交后才发信。
func (s *RegistrationService) Approve(ctx context.Context, userID, actingAdminID string) error {
	tempPw := utils.NewTempPassword()
	var approved *domain.User

	err := s.store.WithTx(ctx, func(tx domain.Store) error {
		u, err := tx.Users().FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.NotFound("user not found")
		}
		if u.Status != domain.UserStatusPending {
			return domain.InvalidState("not pending")
		}

		ok, err := tx.Users().UpdateStatusIfPending(ctx, userID, domain.UserStatusCurrent, map[string]any{
			"password_hash": utils.HashPassword(tempPw),
		})
		if err != nil {
			return err
		}
		if !ok {
			return domain.InvalidState("not pending")
		}

		ok, err = tx.Registrations().Decide(ctx, userID, domain.RegistrationStatusAccepted, "", actingAdminID, time.Now())
		if err != nil {
			return err
		}
		if !ok {
			// 镜像状态不一致，整个事务回滚
			return domain.InvalidState("not pending")
		}

		approved = u
		return nil
	})
	if err != nil {
		return err
	}

	// 提交后的旁路效果：审计 + 邮件，各自隔离，失败不回滚也不上抛
	s.audit.Record(ctx, domain.ActivityUserApproved,
		"Member approved",
		approved.FullName()+" has been approved",
		&userID, &actingAdminID,
		domain.JSONMap{
			"oldStatus": string(domain.UserStatusPending),
			"newStatus": string(domain.UserStatusCurrent),
		})
	if err := s.mailer.SendApprovalEmail(ctx, approved.Email, approved.FirstName, tempPw); err != nil {
		s.log.Warn("approval email failed", zap.String("user_id", userID), zap.Error(err))
	}
	return nil
}

// Reject PENDING → REFUSED/REJECTED，必须带驳回理由
func (s *RegistrationService) Reject(ctx context.Context, userID, reason, actingAdminID string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.Invalid("rejection reason is required")
	}
	var rejected *domain.User

	err := s.store.WithTx(ctx, func(tx domain.Store) error {
		u, err := tx.Users().FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.NotFound("user not found")
		}
		if u.Status != domain.UserStatusPending {
			return domain.InvalidState("not pending")
		}

		ok, err := tx.Users().UpdateStatusIfPending(ctx, userID, domain.UserStatusRefused, nil)
		if err != nil {
			return err
		}
		if !ok {
			return domain.InvalidState("not pending")
		}

		ok, err = tx.Registrations().Decide(ctx, userID, domain.RegistrationStatusRejected, reason, actingAdminID, time.Now())
		if err != nil {
			return err
		}
		if !ok {
			return domain.InvalidState("not pending")
		}

		rejected = u
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, domain.ActivityUserRejected,
		"Member rejected",
		rejected.FullName()+" has been rejected",
		&userID, &actingAdminID,
		domain.JSONMap{
			"oldStatus": string(domain.UserStatusPending),
			"newStatus": string(domain.UserStatusRefused),
			"reason":    reason,
		})
	if err := s.mailer.SendRejectionEmail(ctx, rejected.Email, rejected.FirstName, reason); err != nil {
		s.log.Warn("rejection email failed", zap.String("user_id", userID), zap.Error(err))
	}
	return nil
}

// Archive 任意非 DELETED 状态 → DELETED；与裁决分支正交，不改动申请记录
func (s *RegistrationService) Archive(ctx context.Context, userID, actingAdminID string) error {
	u, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.NotFound("user not found")
	}
	if u.Status == domain.UserStatusDeleted {
		return domain.InvalidState("already archived")
	}

	ok, err := s.store.Users().Archive(ctx, userID, actingAdminID, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		// 读与写之间被并发归档
		return domain.InvalidState("already archived")
	}

	s.audit.Record(ctx, domain.ActivityUserArchived,
		"Member archived",
		u.FullName()+" has been archived",
		&userID, &actingAdminID,
		domain.JSONMap{
			"oldStatus": string(u.Status),
			"newStatus": string(domain.UserStatusDeleted),
		})
	return nil
}

// ListPending 待裁决申请，最新优先，带乐器与申请正文
func (s *RegistrationService) ListPending(ctx context.Context) ([]domain.User, error) {
	return s.store.Users().ListPending(ctx)
}

func isDupKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
