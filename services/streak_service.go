package services

import (
	"errors"

	"voltguard-streak-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StreakService struct {
	DB     *gorm.DB
	Weekly *WeeklyService
	Pets   *PetService
}

func NewStreakService(db *gorm.DB, weekly *WeeklyService, pets *PetService) *StreakService {
	return &StreakService{DB: db, Weekly: weekly, Pets: pets}
}

// StreakOverview is the composed read model for GET /api/streaks/:userId.
type StreakOverview struct {
	CurrentStreak    int        `json:"currentStreak"`
	BestStreak       int        `json:"bestStreak"`
	CurrentTier      string     `json:"currentTier"`
	MissedDays       int        `json:"missedDays"`
	AvgEfficiency    float64    `json:"avgEfficiency"`
	WeeklyGoalsMet   int        `json:"weeklyGoalsMet"`
	TotalGoals       int        `json:"totalGoals"`
	LastActivityDate *string    `json:"lastActivityDate"`
	PetState         PetDisplay `json:"petState"`
}

// InitializeUser bootstraps user, streak and pet rows. Fully idempotent —
// calling it for an existing user changes nothing.
func (s *StreakService) InitializeUser(userID string) error {
	if userID == "" {
		return validationErrorf("userId is required")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		username := "user_" + userID
		if len(userID) >= 8 {
			username = "user_" + userID[:8]
		}
		user := models.User{UserID: userID, Username: username}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&user).Error; err != nil {
			return err
		}

		streak := models.UserStreak{
			UserID:      userID,
			CurrentTier: TierOrder[0],
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&streak).Error; err != nil {
			return err
		}

		return s.Pets.EnsurePetRow(tx, userID, TierOrder[0])
	})
}

// GetOverview composes the streak row with the rolling 7-day stats and the
// pet display. 404s when the user was never initialized.
func (s *StreakService) GetOverview(userID string) (*StreakOverview, error) {
	var streak models.UserStreak
	if err := s.DB.Where("user_id = ?", userID).First(&streak).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "no streak record for user " + userID}
		}
		return nil, err
	}

	weekly, err := s.Weekly.Summary(userID, Today())
	if err != nil {
		return nil, err
	}

	pet, err := s.Pets.GetPetState(userID, streak.CurrentTier)
	if err != nil {
		return nil, err
	}

	return &StreakOverview{
		CurrentStreak:    streak.CurrentStreakDays,
		BestStreak:       streak.BestStreakDays,
		CurrentTier:      streak.CurrentTier,
		MissedDays:       streak.MissedDaysCount,
		AvgEfficiency:    weekly.AvgEfficiency,
		WeeklyGoalsMet:   weekly.GoalsMet,
		TotalGoals:       len(WeekDays),
		LastActivityDate: streak.LastActivityDate,
		PetState:         pet,
	}, nil
}
