package services

import (
	"math"
	"time"

	"voltguard-streak-system/models"

	"gorm.io/gorm"
)

type WeeklyService struct {
	DB  *gorm.DB
	Cfg Config
}

func NewWeeklyService(db *gorm.DB, cfg Config) *WeeklyService {
	return &WeeklyService{DB: db, Cfg: cfg}
}

// WeekDays is the canonical chart order.
var WeekDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type DayUsage struct {
	Day        string  `json:"day"`
	Usage      int     `json:"usage"`
	Efficiency float64 `json:"efficiency"`
}

type WeeklySummary struct {
	WeeklyUsage   []DayUsage `json:"weeklyUsage"`
	AvgEfficiency float64    `json:"avgEfficiency"`
	GoalsMet      int        `json:"goalsMet"`
}

// Summary aggregates the 7 calendar days ending at asOf inclusive.
func (s *WeeklyService) Summary(userID, asOf string) (*WeeklySummary, error) {
	end, err := ParseDay(asOf)
	if err != nil {
		return nil, err
	}
	start := end.AddDate(0, 0, -6).Format(dayLayout)

	var records []models.DailyUsage
	if err := s.DB.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, asOf).
		Find(&records).Error; err != nil {
		return nil, err
	}

	return BuildWeeklySummary(records, s.Cfg.QualifyingScore), nil
}

// BuildWeeklySummary shapes a window of records into the weekly chart
// contract: always 7 entries in Monday..Sunday order, absent weekdays
// zero-filled so clients never handle gaps; avgEfficiency is 0 (not NaN)
// when the window is empty.
func BuildWeeklySummary(records []models.DailyUsage, qualifyingScore int) *WeeklySummary {
	type bucket struct {
		usage int
		score int
		count int
	}
	byDay := make(map[string]*bucket, len(WeekDays))

	scoreSum := 0
	goalsMet := 0
	for _, r := range records {
		b := byDay[r.DayOfWeek]
		if b == nil {
			b = &bucket{}
			byDay[r.DayOfWeek] = b
		}
		b.usage += r.UsageMinutes
		b.score += r.EnergyEfficiencyScore
		b.count++

		scoreSum += r.EnergyEfficiencyScore
		if r.EnergyEfficiencyScore >= qualifyingScore {
			goalsMet++
		}
	}

	summary := &WeeklySummary{WeeklyUsage: make([]DayUsage, 0, len(WeekDays))}
	for _, day := range WeekDays {
		entry := DayUsage{Day: day}
		if b := byDay[day]; b != nil {
			entry.Usage = b.usage
			entry.Efficiency = round1(float64(b.score) / float64(b.count))
		}
		summary.WeeklyUsage = append(summary.WeeklyUsage, entry)
	}

	if len(records) > 0 {
		summary.AvgEfficiency = round1(float64(scoreSum) / float64(len(records)))
	}
	summary.GoalsMet = goalsMet

	return summary
}

// Today returns the current calendar key; split out so reads default to a
// sane asOf without each handler reimplementing it.
func Today() string {
	return time.Now().UTC().Format(dayLayout)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
