package models

// DailyUsage is one logical record per (user, calendar day).
// Re-submissions for the same day merge: minutes accumulate, the
// efficiency score is replaced by the latest value. Rows are never deleted.
type DailyUsage struct {
	ID                    string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID                string `gorm:"not null;index;uniqueIndex:idx_user_date" json:"user_id"`
	Date                  string `gorm:"type:varchar(10);not null;uniqueIndex:idx_user_date" json:"date"` // YYYY-MM-DD, user-local calendar key
	DayOfWeek             string `gorm:"type:varchar(9);not null" json:"day_of_week"`                     // Monday..Sunday, verified against Date
	UsageMinutes          int    `gorm:"not null;default:0" json:"usage_minutes"`
	EnergyEfficiencyScore int    `gorm:"not null;default:0" json:"energy_efficiency_score"` // 0..100

	Timestamps
}
