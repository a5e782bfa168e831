package location

import (
	"time"
)

type RewardType string

const (
	RewardPoints  RewardType = "points"
	RewardCoupon  RewardType = "coupon"
	RewardRaffle  RewardType = "raffle"
	RewardProduct RewardType = "product"
)

func (t RewardType) Valid() bool {
	switch t {
	case RewardPoints, RewardCoupon, RewardRaffle, RewardProduct:
		return true
	default:
		return false
	}
}

type Sponsor struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	Name         string    `gorm:"column:name;size:200;not null" json:"name"`
	LogoURL      string    `gorm:"column:logo_url;size:500" json:"logo_url,omitempty"`
	ContactEmail string    `gorm:"column:contact_email;size:255;not null" json:"contact_email"`
	IsActive     bool      `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Sponsor) TableName() string { return "sponsors" }

// Location is a geographic anchor a reward can be claimed at. Read-only to
// the claim pipeline.
type Location struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	SponsorID   *string   `gorm:"column:sponsor_id;index" json:"sponsor_id,omitempty"`
	Name        string    `gorm:"column:name;size:200;not null" json:"name"`
	Description string    `gorm:"column:description;size:1000" json:"description,omitempty"`
	Latitude    float64   `gorm:"column:latitude;not null" json:"latitude"`
	Longitude   float64   `gorm:"column:longitude;not null" json:"longitude"`
	Address     string    `gorm:"column:address;size:500" json:"address,omitempty"`
	ImageURL    string    `gorm:"column:image_url;size:500" json:"image_url,omitempty"`
	RadiusM     int       `gorm:"column:radius_m;not null;default:100" json:"radius_m"`
	City        string    `gorm:"column:city;size:100;index;not null" json:"city"`
	IsActive    bool      `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	RewardTemplate *RewardTemplate `gorm:"foreignKey:LocationID" json:"reward_template,omitempty"`
}

func (Location) TableName() string { return "locations" }

// RewardTemplate is the reward configuration attached to a location. The
// bearing and elevation are AR placement hints carried through unchanged;
// claim logic never reads them.
type RewardTemplate struct {
	ID                string     `gorm:"column:id;primaryKey" json:"id"`
	LocationID        string     `gorm:"column:location_id;index;not null" json:"location_id"`
	RewardType        RewardType `gorm:"column:reward_type;size:20;not null" json:"reward_type"`
	RewardValue       int64      `gorm:"column:reward_value;not null;default:0" json:"reward_value"`
	RewardDescription string     `gorm:"column:reward_description;size:500" json:"reward_description,omitempty"`
	BearingDegrees    float64    `gorm:"column:bearing_degrees;not null" json:"bearing_degrees"`
	ElevationDegrees  float64    `gorm:"column:elevation_degrees;not null;default:0" json:"elevation_degrees"`
	IsActive          bool       `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RewardTemplate) TableName() string { return "reward_templates" }

// NearbyLocation is a location enriched with the distance from the
// requesting coordinate.
type NearbyLocation struct {
	Location
	DistanceM float64 `json:"distance_m"`
}

type NearbyQuery struct {
	Latitude  float64 `form:"latitude" binding:"gte=-90,lte=90"`
	Longitude float64 `form:"longitude" binding:"gte=-180,lte=180"`
	RadiusKM  float64 `form:"radius_km,default=5" binding:"gt=0,lte=1000"`
	City      string  `form:"city"`
}
