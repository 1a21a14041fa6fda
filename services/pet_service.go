package services

import (
	"errors"
	"fmt"
	"log"

	"voltguard-streak-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PetService struct {
	DB *gorm.DB
}

func NewPetService(db *gorm.DB) *PetService {
	return &PetService{DB: db}
}

// PetDisplay is the cosmetic state shown to the user. It is a pure function
// of the current tier — nothing else feeds it.
type PetDisplay struct {
	Name           string `json:"name"`
	Tier           string `json:"tier"`
	ImageURL       string `json:"imageUrl"`
	AnimationState string `json:"animationState"`
}

// petProjection: one entry per tier. Totality is enforced at startup via
// VerifyProjection; a missing entry is a configuration error, not a
// request-time condition.
var petProjection = map[string]PetDisplay{
	"Starter":  {Name: "Watt the Hatchling", ImageURL: "/assets/pets/watt-hatchling.png", AnimationState: "idle"},
	"Bronze":   {Name: "Watt the Spark", ImageURL: "/assets/pets/watt-spark.png", AnimationState: "bounce"},
	"Silver":   {Name: "Watt the Glow", ImageURL: "/assets/pets/watt-glow.png", AnimationState: "bounce"},
	"Gold":     {Name: "Watt the Beam", ImageURL: "/assets/pets/watt-beam.png", AnimationState: "dance"},
	"Platinum": {Name: "Watt the Radiant", ImageURL: "/assets/pets/watt-radiant.png", AnimationState: "dance"},
}

// VerifyProjection checks every ladder tier has a pet entry. Called once in
// main; failure is fatal at startup.
func VerifyProjection() error {
	for _, tier := range TierOrder {
		if _, ok := petProjection[tier]; !ok {
			return fmt.Errorf("pet projection has no entry for tier %s", tier)
		}
	}
	return nil
}

// ProjectPet maps a tier to its pet display. Tiers outside the ladder are a
// ConsistencyError — they can only come from corrupted state.
func ProjectPet(tier string) (PetDisplay, error) {
	display, ok := petProjection[tier]
	if !ok {
		return PetDisplay{}, &ConsistencyError{Msg: "no pet projection for tier " + tier}
	}
	display.Tier = tier
	return display, nil
}

// WriteThrough refreshes the cached pet row after a tier transition, inside
// the caller's transaction.
func (s *PetService) WriteThrough(tx *gorm.DB, userID, tier string) error {
	display, err := ProjectPet(tier)
	if err != nil {
		return err
	}
	return tx.Model(&models.PetState{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"pet_name":            display.Name,
			"pet_image_url":       display.ImageURL,
			"pet_animation_state": display.AnimationState,
		}).Error
}

// EnsurePetRow creates the user's cached pet row if absent (idempotent).
func (s *PetService) EnsurePetRow(tx *gorm.DB, userID, tier string) error {
	display, err := ProjectPet(tier)
	if err != nil {
		return err
	}
	row := models.PetState{
		UserID:            userID,
		PetName:           display.Name,
		PetImageURL:       display.ImageURL,
		PetAnimationState: display.AnimationState,
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&row).Error
}

// GetPetState returns the cached row, falling back to a fresh projection
// when the cache row is missing.
func (s *PetService) GetPetState(userID, tier string) (PetDisplay, error) {
	var row models.PetState
	err := s.DB.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ProjectPet(tier)
	}
	if err != nil {
		return PetDisplay{}, err
	}
	return PetDisplay{
		Name:           row.PetName,
		Tier:           tier,
		ImageURL:       row.PetImageURL,
		AnimationState: row.PetAnimationState,
	}, nil
}

// Reconcile sweeps every streak row and repairs cached pet rows that have
// drifted from the tier projection. Drift should not happen — each repair
// is logged as the consistency incident it is.
func (s *PetService) Reconcile() error {
	var streaks []models.UserStreak
	if err := s.DB.Find(&streaks).Error; err != nil {
		return err
	}

	repaired := 0
	for _, st := range streaks {
		display, err := ProjectPet(st.CurrentTier)
		if err != nil {
			log.Printf("[PetReconcile] user %s has unknown tier %q, skipping", st.UserID, st.CurrentTier)
			continue
		}

		var row models.PetState
		err = s.DB.Where("user_id = ?", st.UserID).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := s.EnsurePetRow(s.DB, st.UserID, st.CurrentTier); err != nil {
				log.Printf("[PetReconcile] failed to create pet row for user %s: %v", st.UserID, err)
			} else {
				repaired++
			}
			continue
		}
		if err != nil {
			return err
		}

		if row.PetName == display.Name && row.PetImageURL == display.ImageURL {
			continue
		}
		log.Printf("[PetReconcile] pet cache drifted for user %s (tier %s), repairing", st.UserID, st.CurrentTier)
		if err := s.WriteThrough(s.DB, st.UserID, st.CurrentTier); err != nil {
			return err
		}
		repaired++
	}

	if repaired > 0 {
		log.Printf("[PetReconcile] repaired %d pet row(s)", repaired)
	}
	return nil
}
