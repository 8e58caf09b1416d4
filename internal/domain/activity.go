package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type ActivityType string

const (
	ActivityUserApproved   ActivityType = "user_approved"
	ActivityUserRejected   ActivityType = "user_rejected"
	ActivityUserArchived   ActivityType = "user_archived"
	ActivityBadgeAwarded   ActivityType = "badge_awarded"
	ActivityEventPublished ActivityType = "event_published"
	ActivityNewsletterSent ActivityType = "newsletter_sent"
	ActivityPost           ActivityType = "post"
)

// JSONMap 以 JSON 文本落库的键值负载
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *JSONMap) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("jsonmap: unsupported scan type %T", src)
	}
	if len(b) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(b, m)
}

// Activity 审计日志，工作流视角只追加不修改；post 类条目可由后台归档。
type Activity struct {
	ID          string       `gorm:"primaryKey;size:36" json:"id"`
	Type        ActivityType `gorm:"size:32;index" json:"type"`
	Title       string       `gorm:"size:191" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	UserID      *string      `gorm:"size:36;index" json:"userId,omitempty"`    // 对象
	CreatedBy   *string      `gorm:"size:36;index" json:"createdBy,omitempty"` // 操作者
	Metadata    JSONMap      `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`

	IsArchived    bool       `gorm:"index" json:"isArchived"`
	ArchivedAt    *time.Time `json:"archivedAt,omitempty"`
	ArchivedBy    *string    `gorm:"size:36" json:"archivedBy,omitempty"`
	ArchiveReason string     `gorm:"size:255" json:"archiveReason,omitempty"`
}

func (Activity) TableName() string { return "activities" }

type ActivityListFilter struct {
	Type         ActivityType // 空值不过滤
	UserID       string       // 按对象用户过滤
	WithArchived bool
	Offset       int
	Limit        int
}

type ActivityRepository interface {
	Create(ctx context.Context, a *Activity) error
	FindByID(ctx context.Context, id string) (*Activity, error)
	List(ctx context.Context, f ActivityListFilter) ([]Activity, int64, error)
	SetArchived(ctx context.Context, id string, archived bool, byID, reason string, at time.Time) (bool, error)
}
