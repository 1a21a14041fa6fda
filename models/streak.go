package models

// UserStreak tracks the derived streak state for each user (denormalized for performance)
type UserStreak struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID string `gorm:"uniqueIndex;not null" json:"user_id"`

	// Core streak state
	CurrentStreakDays int    `json:"current_streak_days" gorm:"default:0"`
	BestStreakDays    int    `json:"best_streak_days" gorm:"default:0"` // monotone, never below CurrentStreakDays
	CurrentTier       string `json:"current_tier" gorm:"type:varchar(16);default:'Starter'"`

	// Lifetime counters
	MissedDaysCount int `json:"missed_days_count" gorm:"default:0"`

	// Adjacency anchor: the last calendar day that was processed,
	// qualifying or not. Nil until the first submission.
	LastActivityDate *string `json:"last_activity_date,omitempty" gorm:"type:varchar(10)"`

	Timestamps
}
