// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartReconcileScheduler runs the pet cache sweep periodically so a
// drifted or missing pet row never outlives one cycle.
func (s *PetService) StartReconcileScheduler(interval time.Duration) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := s.Reconcile(); err != nil {
				log.Printf("[Scheduler] pet reconcile failed: %v", err)
			}
		}),
	)
}
