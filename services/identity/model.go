package identity

import (
	"time"
)

type Role string

const (
	RoleUser    Role = "user"
	RoleSponsor Role = "sponsor"
	RoleAdmin   Role = "admin"
)

// User is the account provisioned on first successful identity resolution.
// TotalPoints is mutated only by the claim pipeline's reward-grant step.
type User struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	ExternalUID string    `gorm:"column:external_uid;uniqueIndex;size:128;not null" json:"-"`
	Email       string    `gorm:"column:email;uniqueIndex;size:255;not null" json:"email"`
	DisplayName string    `gorm:"column:display_name;size:100;not null;default:''" json:"display_name"`
	AvatarURL   string    `gorm:"column:avatar_url;size:500" json:"avatar_url,omitempty"`
	Role        Role      `gorm:"column:role;size:20;not null;default:'user'" json:"role"`
	TotalPoints int64     `gorm:"column:total_points;not null;default:0" json:"total_points"`
	IsActive    bool      `gorm:"column:is_active;not null" json:"is_active"`
	FCMToken    string    `gorm:"column:fcm_token;size:500" json:"-"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// ExternalIdentity is what the identity provider boundary hands over after a
// bearer credential has been verified: a stable subject plus the profile
// attributes needed to auto-provision a User.
type ExternalIdentity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

type UserUpdate struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=100"`
	AvatarURL   *string `json:"avatar_url" binding:"omitempty,max=500"`
	FCMToken    *string `json:"fcm_token" binding:"omitempty,max=500"`
}

type UserStats struct {
	TotalPoints int64     `json:"total_points"`
	TotalClaims int64     `json:"total_claims"`
	MemberSince time.Time `json:"member_since"`
}
