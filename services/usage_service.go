package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"voltguard-streak-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UsageService struct {
	DB      *gorm.DB
	Cfg     Config
	Rewards *RewardService
	Pets    *PetService
}

func NewUsageService(db *gorm.DB, cfg Config, rewards *RewardService, pets *PetService) *UsageService {
	return &UsageService{DB: db, Cfg: cfg, Rewards: rewards, Pets: pets}
}

type DailyUsageInput struct {
	UserID                string `json:"userId"`
	Date                  string `json:"date"`
	DayOfWeek             string `json:"dayOfWeek"`
	UsageMinutes          *int   `json:"usageMinutes"`
	EnergyEfficiencyScore *int   `json:"energyEfficiencyScore"`
}

type UsageResult struct {
	StreakUpdated bool
	OldTier       string
	NewTier       string
	TierChanged   bool
}

// transient failures are retried a few times before surfacing
const maxRecordAttempts = 3

// Validate rejects malformed input before any state is touched.
// The caller-supplied dayOfWeek is checked against the weekday derived from
// the date instead of being trusted as given.
func (in *DailyUsageInput) Validate() error {
	if in.UserID == "" || in.Date == "" || in.DayOfWeek == "" {
		return validationErrorf("userId, date and dayOfWeek are required")
	}
	if in.UsageMinutes == nil || in.EnergyEfficiencyScore == nil {
		return validationErrorf("usageMinutes and energyEfficiencyScore are required")
	}
	if *in.UsageMinutes < 0 {
		return validationErrorf("usageMinutes must be non-negative, got %d", *in.UsageMinutes)
	}
	if *in.EnergyEfficiencyScore < 0 || *in.EnergyEfficiencyScore > 100 {
		return validationErrorf("energyEfficiencyScore must be in [0,100], got %d", *in.EnergyEfficiencyScore)
	}
	weekday, err := WeekdayName(in.Date)
	if err != nil {
		return err
	}
	if weekday != in.DayOfWeek {
		return validationErrorf("dayOfWeek %q does not match date %s (%s)", in.DayOfWeek, in.Date, weekday)
	}
	return nil
}

// RecordDailyUsage persists/merges the day's usage record and, for the
// day's first record, advances the streak and grants any newly unlocked
// rewards — all inside one transaction keyed by a FOR UPDATE lock on the
// user's streak row, so concurrent submissions for the same user serialize
// while other users proceed untouched.
func (s *UsageService) RecordDailyUsage(in *DailyUsageInput) (*UsageResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var res *UsageResult
	var err error
	for attempt := 1; attempt <= maxRecordAttempts; attempt++ {
		res, err = s.recordOnce(in)
		if err == nil || !isTransient(err) {
			return res, err
		}
		log.Printf("[Usage] transient storage error for user %s (attempt %d/%d): %v",
			in.UserID, attempt, maxRecordAttempts, err)
		time.Sleep(time.Duration(attempt) * 50 * time.Millisecond)
	}
	return nil, &TransientStorageError{Err: err}
}

func (s *UsageService) recordOnce(in *DailyUsageInput) (*UsageResult, error) {
	res := &UsageResult{}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		// Per-user serialization boundary: everything below happens under
		// this row lock.
		var streak models.UserStreak
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", in.UserID).
			First(&streak).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Msg: "no streak record for user " + in.UserID + " (initialize first)"}
			}
			return err
		}

		isFirstForDay, err := mergeUsage(tx, in)
		if err != nil {
			return err
		}

		qualifies := *in.EnergyEfficiencyScore >= s.Cfg.QualifyingScore
		next, err := AdvanceStreak(streak, in.Date, isFirstForDay, qualifies, s.Cfg)
		if err != nil {
			return err
		}

		res.StreakUpdated = isFirstForDay
		res.OldTier = streak.CurrentTier
		res.NewTier = next.CurrentTier
		res.TierChanged = next.CurrentTier != streak.CurrentTier

		if !isFirstForDay {
			return nil
		}

		if err := tx.Save(&next).Error; err != nil {
			return err
		}

		if TierRank(next.CurrentTier) > TierRank(streak.CurrentTier) {
			grants := s.Rewards.ResolveNewRewards(streak.CurrentTier, next.CurrentTier)
			if err := s.Rewards.GrantRewards(tx, in.UserID, grants); err != nil {
				return err
			}
		}

		if res.TierChanged {
			if err := s.Pets.WriteThrough(tx, in.UserID, next.CurrentTier); err != nil {
				return err
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return res, nil
}

// mergeUsage applies the same-day merge policy: first write creates the
// record, later writes accumulate minutes and replace the score with the
// latest value (a deliberate policy, not an accident). Returns whether this
// was the day's first record.
func mergeUsage(tx *gorm.DB, in *DailyUsageInput) (bool, error) {
	var rec models.DailyUsage
	err := tx.Where("user_id = ? AND date = ?", in.UserID, in.Date).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec = models.DailyUsage{
			ID:                    uuid.NewString(),
			UserID:                in.UserID,
			Date:                  in.Date,
			DayOfWeek:             in.DayOfWeek,
			UsageMinutes:          *in.UsageMinutes,
			EnergyEfficiencyScore: *in.EnergyEfficiencyScore,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	rec.UsageMinutes += *in.UsageMinutes
	rec.EnergyEfficiencyScore = *in.EnergyEfficiencyScore
	if err := tx.Save(&rec).Error; err != nil {
		return false, err
	}
	return false, nil
}

// isTransient reports whether a storage error is worth retrying
// (lock/serialization contention, dropped connection).
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	var te *TransientStorageError
	if errors.As(err, &te) {
		return true
	}
	msg := err.Error()
	for _, marker := range []string{
		"deadlock detected",
		"could not serialize access",
		"connection reset",
		"bad connection",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
