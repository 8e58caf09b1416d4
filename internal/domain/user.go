package domain

import (
	"context"
	"time"
)

type UserStatus string

const (
	UserStatusPending UserStatus = "PENDING"
	UserStatusCurrent UserStatus = "CURRENT"
	UserStatusRefused UserStatus = "REFUSED"
	UserStatusDeleted UserStatus = "DELETED"
)

const (
	RoleAdmin  = "admin"
	RoleBureau = "bureau"
	RoleMember = "member"
)

type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Email        string     `gorm:"uniqueIndex;size:191" json:"email"`
	FirstName    string     `gorm:"size:64" json:"firstName"`
	LastName     string     `gorm:"size:64" json:"lastName"`
	PasswordHash string     `gorm:"size:191" json:"-"`
	Status       UserStatus `gorm:"size:16;index" json:"status"`
	PhotoURL     string     `gorm:"size:255" json:"photoUrl"`
	BirthDate    *time.Time `json:"birthDate"`
	Phone        string     `gorm:"size:32" json:"phone"`
	Pronouns     string     `gorm:"size:32" json:"pronouns"`
	Promotion    string     `gorm:"size:16" json:"promotion"` // 届别，如 "L3" / "2027"

	Roles        []Role               `gorm:"many2many:user_roles" json:"roles,omitempty"`
	Instruments  []UserInstrument     `json:"instruments,omitempty"`
	SocialLinks  []SocialLink         `json:"socialLinks,omitempty"`
	Registration *RegistrationRequest `json:"registration,omitempty"`

	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty"`
	ArchivedBy *string    `gorm:"size:36" json:"archivedBy,omitempty"`
}

func (User) TableName() string { return "users" }

func (u *User) FullName() string { return u.FirstName + " " + u.LastName }

func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

type Role struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `gorm:"uniqueIndex;size:32" json:"name"`
}

func (Role) TableName() string { return "roles" }

type Instrument struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	Name   string `gorm:"uniqueIndex;size:64" json:"name"`
	Family string `gorm:"size:32" json:"family"` // brass / woodwind / percussion / strings
}

func (Instrument) TableName() string { return "instruments" }

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "BEGINNER"
	SkillIntermediate SkillLevel = "INTERMEDIATE"
	SkillAdvanced     SkillLevel = "ADVANCED"
	SkillExpert       SkillLevel = "EXPERT"
)

func (s SkillLevel) Valid() bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert:
		return true
	}
	return false
}

type UserInstrument struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	UserID       string     `gorm:"size:36;index" json:"userId"`
	InstrumentID string     `gorm:"size:36" json:"instrumentId"`
	Instrument   Instrument `json:"instrument"`
	SkillLevel   SkillLevel `gorm:"size:16" json:"skillLevel"`
}

func (UserInstrument) TableName() string { return "user_instruments" }

type SocialLink struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	UserID   string `gorm:"size:36;index" json:"userId"`
	Platform string `gorm:"size:32" json:"platform"`
	URL      string `gorm:"size:255" json:"url"`
}

func (SocialLink) TableName() string { return "social_links" }

// UserListFilter 后台成员列表筛选
type UserListFilter struct {
	Query        string
	Status       UserStatus // 空值不过滤
	WithArchived bool
	Offset       int
	Limit        int
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindWithDetails 预加载角色/乐器/社交链接/注册申请
	FindWithDetails(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, f UserListFilter) ([]User, int64, error)
	ListPending(ctx context.Context) ([]User, error)
	ListTeam(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) error
	// UpdateStatusIfPending 条件更新：status 仍为 PENDING 才生效，返回是否命中
	UpdateStatusIfPending(ctx context.Context, id string, to UserStatus, extra map[string]any) (bool, error)
	// Archive 条件更新：status 不为 DELETED 才生效
	Archive(ctx context.Context, id, byID string, at time.Time) (bool, error)
	CountByStatus(ctx context.Context, status UserStatus) (int64, error)
	ReplaceSocialLinks(ctx context.Context, userID string, links []SocialLink) error
	AssignRole(ctx context.Context, userID string, role Role) error
}
