package services

import (
	"testing"

	"voltguard-streak-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usageRec(date, day string, minutes, score int) models.DailyUsage {
	return models.DailyUsage{
		Date:                  date,
		DayOfWeek:             day,
		UsageMinutes:          minutes,
		EnergyEfficiencyScore: score,
	}
}

func TestBuildWeeklySummary_ZeroFill(t *testing.T) {
	records := []models.DailyUsage{
		usageRec("2024-01-01", "Monday", 45, 80),
		usageRec("2024-01-03", "Wednesday", 30, 30),
	}

	summary := BuildWeeklySummary(records, DefaultQualifyingScore)

	require.Len(t, summary.WeeklyUsage, 7)
	for i, day := range WeekDays {
		assert.Equal(t, day, summary.WeeklyUsage[i].Day, "entries must be Monday..Sunday ordered")
	}

	assert.Equal(t, 45, summary.WeeklyUsage[0].Usage)
	assert.Equal(t, 80.0, summary.WeeklyUsage[0].Efficiency)
	assert.Equal(t, 30, summary.WeeklyUsage[2].Usage)
	assert.Equal(t, 30.0, summary.WeeklyUsage[2].Efficiency)

	for _, i := range []int{1, 3, 4, 5, 6} {
		assert.Equal(t, 0, summary.WeeklyUsage[i].Usage, "%s must be zero-filled", WeekDays[i])
		assert.Equal(t, 0.0, summary.WeeklyUsage[i].Efficiency)
	}
}

func TestBuildWeeklySummary_Averages(t *testing.T) {
	records := []models.DailyUsage{
		usageRec("2024-01-01", "Monday", 10, 80),
		usageRec("2024-01-02", "Tuesday", 20, 55),
		usageRec("2024-01-03", "Wednesday", 30, 30),
	}

	summary := BuildWeeklySummary(records, DefaultQualifyingScore)

	assert.Equal(t, 55.0, summary.AvgEfficiency)
	assert.Equal(t, 2, summary.GoalsMet, "80 and 55 meet the default threshold, 30 does not")
}

func TestBuildWeeklySummary_Empty(t *testing.T) {
	summary := BuildWeeklySummary(nil, DefaultQualifyingScore)

	require.Len(t, summary.WeeklyUsage, 7)
	assert.Equal(t, 0.0, summary.AvgEfficiency, "empty window is 0, not NaN")
	assert.Equal(t, 0, summary.GoalsMet)
}

func TestBuildWeeklySummary_Rounding(t *testing.T) {
	records := []models.DailyUsage{
		usageRec("2024-01-01", "Monday", 10, 70),
		usageRec("2024-01-02", "Tuesday", 10, 65),
		usageRec("2024-01-03", "Wednesday", 10, 70),
	}

	summary := BuildWeeklySummary(records, DefaultQualifyingScore)
	assert.Equal(t, 68.3, summary.AvgEfficiency)
}

func TestBuildWeeklySummary_ThresholdShared(t *testing.T) {
	// goalsMet must honor the configured threshold, not a local constant
	records := []models.DailyUsage{
		usageRec("2024-01-01", "Monday", 10, 60),
		usageRec("2024-01-02", "Tuesday", 10, 75),
	}

	summary := BuildWeeklySummary(records, 70)
	assert.Equal(t, 1, summary.GoalsMet)
}
