package model

import (
	"time"

	"gorm.io/datatypes"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	UUIDBase
	Name        string    `gorm:"size:100;not null" json:"name"`
	Email       string    `gorm:"size:100;unique;not null" json:"email"`
	Password    string    `gorm:"size:100;not null" json:"-"`
	Role        UserRole  `gorm:"size:20;default:'student'" json:"role"`
	Phone       string    `gorm:"size:30" json:"phone,omitempty"`
	AvatarURL   string    `gorm:"size:255" json:"avatarUrl,omitempty"`
	IsActive    bool      `gorm:"default:true" json:"isActive"`
	LastLoginAt time.Time `json:"lastLoginAt"`
}

func (User) TableName() string {
	return "users"
}

type LoginStatus string

const (
	LoginSuccess LoginStatus = "success"
	LoginFailed  LoginStatus = "failed"
)

// LoginHistory records every login attempt, successful or not.
type LoginHistory struct {
	UUIDBase
	UserID        string      `gorm:"index;type:varchar(36)" json:"userId"`
	LoginAt       time.Time   `json:"loginAt"`
	IPAddress     string      `gorm:"size:64" json:"ipAddress,omitempty"`
	UserAgent     string      `gorm:"size:255" json:"userAgent,omitempty"`
	Status        LoginStatus `gorm:"size:20" json:"status"`
	FailureReason string      `gorm:"size:255" json:"failureReason,omitempty"`
}

func (LoginHistory) TableName() string {
	return "login_history"
}

// AuditLog captures admin-side mutations for later review.
type AuditLog struct {
	UUIDBase
	UserID     string         `gorm:"index;type:varchar(36)" json:"userId"`
	Action     string         `gorm:"size:100;not null" json:"action"`
	EntityType string         `gorm:"size:50" json:"entityType,omitempty"`
	EntityID   string         `gorm:"size:36" json:"entityId,omitempty"`
	Details    datatypes.JSON `json:"details,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
