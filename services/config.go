package services

import (
	"log"
	"os"
	"strconv"
)

// Config carries the tunable streak policy. Loaded once in main from env.
type Config struct {
	// QualifyingScore is the efficiency score a day needs to count toward
	// the streak. Shared by the engine and the weekly goals-met count.
	QualifyingScore int

	// DemotionGraceDays: when > 0, a streak reset caused by a gap no longer
	// than this keeps the previous tier instead of recomputing it down.
	// 0 disables the grace (tier always recomputed from the streak).
	DemotionGraceDays int
}

const DefaultQualifyingScore = 50

func LoadConfig() Config {
	cfg := Config{
		QualifyingScore:   DefaultQualifyingScore,
		DemotionGraceDays: 0,
	}

	if v := os.Getenv("QUALIFYING_SCORE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 100 {
			log.Fatalf("invalid QUALIFYING_SCORE %q: must be an integer in [0,100]", v)
		}
		cfg.QualifyingScore = n
	}

	if v := os.Getenv("DEMOTION_GRACE_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			log.Fatalf("invalid DEMOTION_GRACE_DAYS %q: must be a non-negative integer", v)
		}
		cfg.DemotionGraceDays = n
	}

	return cfg
}
