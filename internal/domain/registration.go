package domain

import (
	"context"
	"time"
)

type RegistrationStatus string

const (
	RegistrationStatusPending  RegistrationStatus = "PENDING"
	RegistrationStatusAccepted RegistrationStatus = "ACCEPTED"
	RegistrationStatusRejected RegistrationStatus = "REJECTED"
)

// RegistrationRequest 入会申请，与用户一一对应。
// 状态与 User.Status 镜像：PENDING↔PENDING、ACCEPTED↔CURRENT、REJECTED↔REFUSED。
type RegistrationRequest struct {
	ID              string             `gorm:"primaryKey;size:36" json:"id"`
	UserID          string             `gorm:"uniqueIndex;size:36" json:"userId"`
	Motivation      string             `gorm:"type:text" json:"motivation"`
	Experience      string             `gorm:"type:text" json:"experience"`
	Status          RegistrationStatus `gorm:"size:16;index" json:"status"`
	RejectionReason string             `gorm:"size:512" json:"rejectionReason,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	DecidedAt       *time.Time         `json:"decidedAt,omitempty"`
	DecidedBy       *string            `gorm:"size:36" json:"decidedBy,omitempty"`
}

func (RegistrationRequest) TableName() string { return "registration_requests" }

type RegistrationRequestRepository interface {
	Create(ctx context.Context, r *RegistrationRequest) error
	FindByUserID(ctx context.Context, userID string) (*RegistrationRequest, error)
	// Decide 条件更新：status 仍为 PENDING 才生效，返回是否命中
	Decide(ctx context.Context, userID string, to RegistrationStatus, reason, byID string, at time.Time) (bool, error)
}
