package claim

import (
	"time"

	"hotncold-server/pkg/db/pagination"
	"hotncold-server/services/location"
)

// ClaimLog is the immutable record of a claim. The composite unique index on
// (user_id, location_id) is what enforces the once-only rule: two concurrent
// claims for the same pair cannot both commit.
type ClaimLog struct {
	ID                string    `gorm:"column:id;primaryKey" json:"id"`
	UserID            string    `gorm:"column:user_id;not null;uniqueIndex:idx_claim_user_location;index" json:"user_id"`
	LocationID        string    `gorm:"column:location_id;not null;uniqueIndex:idx_claim_user_location;index" json:"location_id"`
	Latitude          float64   `gorm:"column:latitude;not null" json:"latitude"`
	Longitude         float64   `gorm:"column:longitude;not null" json:"longitude"`
	DeviceFingerprint string    `gorm:"column:device_fingerprint;size:500" json:"device_fingerprint,omitempty"`
	ClaimedAt         time.Time `gorm:"column:claimed_at;autoCreateTime;index" json:"claimed_at"`
}

func (ClaimLog) TableName() string { return "claim_logs" }

// Reward is a grant instance created exactly once per successful claim.
// Append-only.
type Reward struct {
	ID               string              `gorm:"column:id;primaryKey" json:"id"`
	UserID           string              `gorm:"column:user_id;not null;index" json:"user_id"`
	Type             location.RewardType `gorm:"column:type;size:20;not null" json:"type"`
	Value            int64               `gorm:"column:value;not null;default:0" json:"value"`
	Description      string              `gorm:"column:description;size:500" json:"description,omitempty"`
	RewardTemplateID string              `gorm:"column:reward_template_id" json:"reward_template_id,omitempty"`
	LocationID       string              `gorm:"column:location_id" json:"location_id,omitempty"`
	Redeemed         bool                `gorm:"column:redeemed;not null;default:false" json:"redeemed"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Reward) TableName() string { return "rewards" }

type ClaimRequest struct {
	Latitude  float64 `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" binding:"gte=-180,lte=180"`
	DeviceID  string  `json:"device_id" binding:"omitempty,max=500"`
}

// ClaimResult echoes the granted reward plus display fields for the client.
type ClaimResult struct {
	RewardType        location.RewardType `json:"reward_type"`
	RewardValue       int64               `json:"reward_value"`
	RewardDescription string              `json:"reward_description"`
	TotalPoints       int64               `json:"total_points"`
	LocationID        string              `json:"location_id"`
	LocationName      string              `json:"location_name"`
}

type WalletSummary struct {
	TotalPoints  int64                `json:"total_points"`
	TotalRewards int64                `json:"total_rewards"`
	Rewards      []*Reward            `json:"rewards"`
	PageInfo     *pagination.PageInfo `json:"page_info"`
}
