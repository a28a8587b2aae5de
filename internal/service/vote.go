package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/resiplicity/backend/internal/model"
)

// Vote directions accepted by ApplyVote.
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// VoteService recomputes a recipe's vote count and trust score.
type VoteService struct {
	db *gorm.DB
}

// NewVoteService creates a new VoteService instance
func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{db: db}
}

// ApplyVote reads the current (votes, trust_score) for the recipe, applies
// the vote and writes both back in a single update keyed by id. Votes are
// unbounded and may go negative; trust_score is clamped to [0,100].
//
// This is a read-then-write without an optimistic concurrency token:
// concurrent votes on the same recipe are last-write-wins.
func (s *VoteService) ApplyVote(ctx context.Context, recipeID uuid.UUID, direction string) (*model.Recipe, error) {
	var voteChange, trustChange int
	switch direction {
	case VoteUp:
		voteChange, trustChange = 1, 2
	case VoteDown:
		voteChange, trustChange = -1, -2
	default:
		return nil, fmt.Errorf("invalid vote direction %q", direction)
	}

	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, &PersistenceError{Op: "failed to read recipe", Err: err}
	}

	recipe.Votes += voteChange
	recipe.TrustScore = clampTrustScore(recipe.TrustScore + trustChange)

	err := s.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Where("id = ?", recipeID).
		Updates(map[string]interface{}{
			"votes":       recipe.Votes,
			"trust_score": recipe.TrustScore,
		}).Error
	if err != nil {
		return nil, &PersistenceError{Op: "failed to update vote", Err: err}
	}

	return &recipe, nil
}

func clampTrustScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
