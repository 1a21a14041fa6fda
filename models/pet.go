package models

// PetState is the cached per-user pet display row. The source of truth is
// the pure projection from UserStreak.CurrentTier; this row is written
// through on every tier transition and reconciled by a background job, so a
// stale cache can never outlive one reconcile cycle.
type PetState struct {
	ID                string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID            string `gorm:"uniqueIndex;not null" json:"user_id"`
	PetName           string `gorm:"not null" json:"pet_name"`
	PetImageURL       string `gorm:"type:text" json:"pet_image_url"`
	PetAnimationState string `gorm:"type:varchar(16);default:'idle'" json:"pet_animation_state"`

	Timestamps
}
