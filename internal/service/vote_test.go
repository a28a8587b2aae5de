package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/resiplicity/backend/internal/model"
)

func createVoteRecipe(t *testing.T, db *gorm.DB, votes, trust int) *model.Recipe {
	recipe := &model.Recipe{
		Title:      "Test Recipe",
		Votes:      votes,
		TrustScore: trust,
		UserID:     uuid.New(),
		Embedding:  GenerateEmbedding("Test Recipe"),
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

func TestApplyVote_Up(t *testing.T) {
	db := openTestDB(t)
	svc := NewVoteService(db)
	recipe := createVoteRecipe(t, db, 5, 50)

	updated, err := svc.ApplyVote(context.Background(), recipe.ID, VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Votes)
	assert.Equal(t, 52, updated.TrustScore)

	var stored model.Recipe
	require.NoError(t, db.First(&stored, "id = ?", recipe.ID).Error)
	assert.Equal(t, 6, stored.Votes)
	assert.Equal(t, 52, stored.TrustScore)
}

func TestApplyVote_Down(t *testing.T) {
	db := openTestDB(t)
	svc := NewVoteService(db)
	recipe := createVoteRecipe(t, db, 5, 50)

	updated, err := svc.ApplyVote(context.Background(), recipe.ID, VoteDown)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Votes)
	assert.Equal(t, 48, updated.TrustScore)
}

func TestApplyVote_TrustClampedAtCeiling(t *testing.T) {
	db := openTestDB(t)
	svc := NewVoteService(db)
	recipe := createVoteRecipe(t, db, 10, 99)

	updated, err := svc.ApplyVote(context.Background(), recipe.ID, VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 100, updated.TrustScore)
	assert.Equal(t, 11, updated.Votes)
}

func TestApplyVote_TrustClampedAtFloor(t *testing.T) {
	db := openTestDB(t)
	svc := NewVoteService(db)
	recipe := createVoteRecipe(t, db, -3, 1)

	updated, err := svc.ApplyVote(context.Background(), recipe.ID, VoteDown)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.TrustScore)
	// Votes keep going down even when trust has bottomed out.
	assert.Equal(t, -4, updated.Votes)
}

func TestApplyVote_NotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewVoteService(db)

	_, err := svc.ApplyVote(context.Background(), uuid.New(), VoteUp)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestApplyVote_InvalidDirection(t *testing.T) {
	db := openTestDB(t)
	svc := NewVoteService(db)
	recipe := createVoteRecipe(t, db, 0, 50)

	_, err := svc.ApplyVote(context.Background(), recipe.ID, "sideways")
	assert.Error(t, err)
}
