package services

import (
	"fmt"
	"time"

	"voltguard-streak-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RewardService struct {
	DB *gorm.DB
}

func NewRewardService(db *gorm.DB) *RewardService {
	return &RewardService{DB: db}
}

// RewardCatalog: one reward per tier above Starter. Names and imagery are
// placeholder content; admins replace images via the asset endpoint.
var RewardCatalog = []models.TierReward{
	{
		Tier:              "Bronze",
		RewardName:        "Bronze Leaf",
		RewardDescription: "Kept a 10-day energy-saving streak",
	},
	{
		Tier:              "Silver",
		RewardName:        "Silver Sprout",
		RewardDescription: "Kept a 25-day energy-saving streak",
	},
	{
		Tier:              "Gold",
		RewardName:        "Gold Canopy",
		RewardDescription: "Kept a 50-day energy-saving streak",
	},
	{
		Tier:              "Platinum",
		RewardName:        "Platinum Grove",
		RewardDescription: "Kept a 100-day energy-saving streak",
	},
}

// SeedCatalog inserts missing catalog rows. Existing rows (including
// admin-edited imagery) are left alone.
func (s *RewardService) SeedCatalog() error {
	for _, r := range RewardCatalog {
		row := r
		if err := s.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tier"}},
			DoNothing: true,
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to seed reward for tier %s: %w", r.Tier, err)
		}
	}
	return nil
}

// ResolveNewRewards returns the catalog tiers unlocked by a promotion from
// oldTier to newTier: every tier strictly above oldTier up to and including
// newTier. Covers multi-tier jumps in one update. Nil when newTier does not
// rank above oldTier.
func (s *RewardService) ResolveNewRewards(oldTier, newTier string) []string {
	oldRank := TierRank(oldTier)
	newRank := TierRank(newTier)
	if newRank <= oldRank {
		return nil
	}
	var tiers []string
	for i := oldRank + 1; i <= newRank; i++ {
		tiers = append(tiers, TierOrder[i])
	}
	return tiers
}

// GrantRewards awards the given tiers' rewards to the user, skipping any
// already held. The (user_id, reward_id) unique index plus OnConflict
// DoNothing makes a revisit after demotion/re-promotion a no-op.
func (s *RewardService) GrantRewards(tx *gorm.DB, userID string, tiers []string) error {
	for _, tier := range tiers {
		var reward models.TierReward
		if err := tx.Where("tier = ?", tier).First(&reward).Error; err != nil {
			return fmt.Errorf("reward catalog missing tier %s: %w", tier, err)
		}
		grant := models.UserReward{
			UserID:   userID,
			RewardID: reward.RewardID,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "reward_id"}},
			DoNothing: true,
		}).Create(&grant).Error; err != nil {
			return err
		}
	}
	return nil
}

// EarnedReward is the joined shape for GET /api/rewards/:userId.
type EarnedReward struct {
	Tier              string    `json:"tier"`
	RewardName        string    `json:"rewardName"`
	RewardDescription string    `json:"rewardDescription"`
	RewardImageURL    string    `json:"rewardImageUrl"`
	EarnedAt          time.Time `json:"earnedAt"`
}

// GetUserRewards returns the user's earned rewards, newest first.
func (s *RewardService) GetUserRewards(userID string) ([]EarnedReward, error) {
	rewards := []EarnedReward{}
	err := s.DB.Raw(`
		SELECT tr.tier, tr.reward_name, tr.reward_description, tr.reward_image_url, ur.earned_at
		FROM user_rewards ur
		INNER JOIN tier_rewards tr ON tr.reward_id = ur.reward_id
		WHERE ur.user_id = ?
		ORDER BY ur.earned_at DESC
	`, userID).Scan(&rewards).Error
	if err != nil {
		return nil, err
	}
	return rewards, nil
}

// SetRewardImage points a catalog tier at a freshly uploaded asset URL.
func (s *RewardService) SetRewardImage(tier, imageURL string) error {
	if TierRank(tier) <= 0 {
		return validationErrorf("tier %q has no catalog reward", tier)
	}
	result := s.DB.Model(&models.TierReward{}).
		Where("tier = ?", tier).
		Update("reward_image_url", imageURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Msg: "no catalog reward for tier " + tier}
	}
	return nil
}
