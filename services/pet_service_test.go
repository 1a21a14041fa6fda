package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyProjection(t *testing.T) {
	assert.NoError(t, VerifyProjection())
}

func TestProjectPet_TotalOverLadder(t *testing.T) {
	for _, tier := range TierOrder {
		display, err := ProjectPet(tier)
		require.NoError(t, err, "tier %s", tier)
		assert.Equal(t, tier, display.Tier)
		assert.NotEmpty(t, display.Name)
		assert.NotEmpty(t, display.ImageURL)
		assert.NotEmpty(t, display.AnimationState)
	}
}

func TestProjectPet_Deterministic(t *testing.T) {
	a, err := ProjectPet("Bronze")
	require.NoError(t, err)
	b, err := ProjectPet("Bronze")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestProjectPet_UnknownTier(t *testing.T) {
	_, err := ProjectPet("Mythril")
	var ce *ConsistencyError
	require.ErrorAs(t, err, &ce)
}
