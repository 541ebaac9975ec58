// services/completion.go - Completion Ledger & Orchestration
package services

import (
	"errors"
	"questlog/models"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInvalidRequest = errors.New("invalid request")

// Completion actions reported to callers.
const (
	ActionInserted = "inserted"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionNoop     = "noop"
)

// CompletionResult reports what a SetCompletion call did. XP/Gold are the
// verified amounts granted (inserted/updated) or reversed (deleted).
type CompletionResult struct {
	Action string
	XP     int
	Gold   int
}

// CompletionService owns the two observable operations over the completion
// ledger. A grant computes the reward server-side (catalog + fate), writes
// the snapshot record, and applies the delta to the aggregate; a revoke
// reverses exactly the stored snapshot, never a recomputation. Ledger and
// aggregate writes share one transaction, ledger first, so a ledger failure
// guarantees the aggregate was not touched.
type CompletionService struct {
	DB       *gorm.DB
	Catalog  *RewardCatalog
	Fate     *FateService
	Progress *ProgressionAggregator
}

func NewCompletionService(db *gorm.DB) *CompletionService {
	return &CompletionService{
		DB:       db,
		Catalog:  NewRewardCatalog(db),
		Fate:     NewFateService(db),
		Progress: &ProgressionAggregator{},
	}
}

// SetCompletion toggles the (userID, questID) completion state.
func (s *CompletionService) SetCompletion(userID uint, questID string, completed bool) (*CompletionResult, error) {
	if strings.TrimSpace(questID) == "" {
		return nil, ErrInvalidRequest
	}

	if !completed {
		return s.revoke(userID, questID)
	}

	def, err := s.Catalog.Lookup(questID)
	if err != nil {
		return nil, err
	}

	reward, err := s.Fate.ApplyToReward(Reward{XP: def.BaseXP, Gold: def.BaseGold}, def.Category, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.grant(userID, questID, reward)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Two first-grants raced on the unique (user_id, quest_id) index; the
		// loser retries with the same computed amount and lands on the
		// update-in-place path.
		result, err = s.grant(userID, questID, reward)
	}
	return result, err
}

// grant inserts or updates the ledger record and applies the aggregate delta
// in one transaction. A re-grant reverses the prior snapshot before applying
// the new amount, so the aggregate always reflects only the latest grant.
func (s *CompletionService) grant(userID uint, questID string, reward Reward) (*CompletionResult, error) {
	result := &CompletionResult{XP: reward.XP, Gold: reward.Gold}
	now := time.Now().UTC()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Lock the ledger row for the rest of the transaction so a concurrent
		// re-grant or revoke cannot act on the same prior snapshot. SQLite
		// serializes writers and ignores the clause.
		var existing models.QuestCompletion
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND quest_id = ?", userID, questID).First(&existing).Error

		switch {
		case err == nil:
			prior := Reward{XP: existing.XPEarned, Gold: existing.GoldEarned}
			if err := tx.Model(&existing).Updates(map[string]interface{}{
				"completed":    true,
				"completed_at": now,
				"xp_earned":    reward.XP,
				"gold_earned":  reward.Gold,
			}).Error; err != nil {
				return err
			}
			if err := s.Progress.ReverseDelta(tx, userID, prior); err != nil {
				return err
			}
			if err := s.Progress.ApplyDelta(tx, userID, reward); err != nil {
				return err
			}
			result.Action = ActionUpdated
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			record := models.QuestCompletion{
				UserID:      userID,
				QuestID:     questID,
				Completed:   true,
				CompletedAt: now,
				XPEarned:    reward.XP,
				GoldEarned:  reward.Gold,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			if err := s.Progress.ApplyDelta(tx, userID, reward); err != nil {
				return err
			}
			result.Action = ActionInserted
			return nil

		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// revoke deletes the record and reverses exactly its stored snapshot. The
// RowsAffected check makes racing revokes reverse at most once.
func (s *CompletionService) revoke(userID uint, questID string) (*CompletionResult, error) {
	result := &CompletionResult{Action: ActionNoop}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Same row lock as grant: the snapshot we reverse must be the one we
		// delete, not one a concurrent re-grant is replacing.
		var record models.QuestCompletion
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND quest_id = ?", userID, questID).First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		res := tx.Where("user_id = ? AND quest_id = ?", userID, questID).
			Delete(&models.QuestCompletion{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		snapshot := Reward{XP: record.XPEarned, Gold: record.GoldEarned}
		if err := s.Progress.ReverseDelta(tx, userID, snapshot); err != nil {
			return err
		}

		result = &CompletionResult{Action: ActionDeleted, XP: snapshot.XP, Gold: snapshot.Gold}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetCompletion returns the record for one quest, or nil when absent.
func (s *CompletionService) GetCompletion(userID uint, questID string) (*models.QuestCompletion, error) {
	var record models.QuestCompletion
	err := s.DB.Where("user_id = ? AND quest_id = ?", userID, questID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListCompletions returns all of a user's records, most recent first.
func (s *CompletionService) ListCompletions(userID uint) ([]models.QuestCompletion, error) {
	var records []models.QuestCompletion
	err := s.DB.Where("user_id = ?", userID).
		Order("completed_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
