package models

import (
	"time"
)

// TierReward: static catalog row, one reward per tier above Starter.
// Seeded at boot; content (names, imagery) is opaque admin data.
type TierReward struct {
	RewardID          string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"reward_id"`
	Tier              string    `gorm:"uniqueIndex;not null;type:varchar(16)" json:"tier"`
	RewardName        string    `gorm:"not null" json:"reward_name"`
	RewardDescription string    `gorm:"type:text" json:"reward_description"`
	RewardImageURL    string    `gorm:"type:text" json:"reward_image_url"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// UserReward: awarded instance. A tier's reward is granted at most once per
// user, at the moment of first reaching that tier — never re-granted after
// demotion and re-promotion.
type UserReward struct {
	ID       string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID   string    `gorm:"not null;uniqueIndex:idx_user_reward" json:"user_id"`
	RewardID string    `gorm:"not null;uniqueIndex:idx_user_reward" json:"reward_id"`
	EarnedAt time.Time `json:"earned_at" gorm:"autoCreateTime"`
}
