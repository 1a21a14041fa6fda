package workers

import (
	"context"
	"log"
	"time"

	"voltguard-streak-system/services"

	"gorm.io/gorm"
)

// BootstrapRepairWorker sweeps for users whose initialization was
// interrupted (user row exists, streak or pet row missing) and finishes the
// bootstrap. InitializeUser is idempotent, so repairing a healthy user is
// harmless.
type BootstrapRepairWorker struct {
	DB      *gorm.DB
	Streaks *services.StreakService
}

func NewBootstrapRepairWorker(db *gorm.DB, streaks *services.StreakService) *BootstrapRepairWorker {
	return &BootstrapRepairWorker{DB: db, Streaks: streaks}
}

func (w *BootstrapRepairWorker) findBrokenUsers() ([]string, error) {
	var userIDs []string
	err := w.DB.Raw(`
		SELECT u.user_id
		FROM users u
		LEFT JOIN user_streaks us ON us.user_id = u.user_id
		LEFT JOIN pet_states ps ON ps.user_id = u.user_id
		WHERE us.user_id IS NULL OR ps.user_id IS NULL
	`).Scan(&userIDs).Error
	return userIDs, err
}

// Run polls until the context is cancelled.
func (w *BootstrapRepairWorker) Run(ctx context.Context, pollInterval time.Duration) {
	log.Println("Starting bootstrap repair worker...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Bootstrap repair worker stopped.")
			return
		case <-ticker.C:
			userIDs, err := w.findBrokenUsers()
			if err != nil {
				log.Printf("[Bootstrap] scan failed: %v", err)
				continue
			}
			if len(userIDs) == 0 {
				continue
			}

			log.Printf("[Bootstrap] repairing %d half-initialized user(s)", len(userIDs))
			for _, id := range userIDs {
				if err := w.Streaks.InitializeUser(id); err != nil {
					log.Printf("[Bootstrap] repair failed for user %s: %v", id, err)
				}
			}
		}
	}
}
