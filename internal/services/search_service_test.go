package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchUsers(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "Alice Smith", "wonderland")
	env.addUser("bob", "Bob", "alister")
	env.addUser("carol", "Carol", "carol")
	ctx := context.Background()

	results, err := env.searchService.SearchUsers(ctx, "ali", "")
	require.NoError(t, err)
	require.Len(t, results, 2)

	ids := []string{results[0].ID, results[1].ID}
	assert.Contains(t, ids, "alice") // matched on name
	assert.Contains(t, ids, "bob")   // matched on username
}

func TestSearchUsersCaseInsensitive(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "Alice Smith", "wonderland")
	ctx := context.Background()

	results, err := env.searchService.SearchUsers(ctx, "ALI", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "alice", results[0].ID)
}

func TestSearchUsersDeduplicates(t *testing.T) {
	env := newTestEnv()
	// matches both name and username scans
	env.addUser("alice", "Alice", "alice")
	ctx := context.Background()

	results, err := env.searchService.SearchUsers(ctx, "ali", "")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearchUsersFollowingAnnotation(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "Alice", "alice")
	env.addUser("bob", "Bob", "")
	ctx := context.Background()

	require.NoError(t, env.followService.Follow(ctx, "bob", "alice"))

	results, err := env.searchService.SearchUsers(ctx, "ali", "bob")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].IsFollowing)

	// same search without a requester reports false
	results, err = env.searchService.SearchUsers(ctx, "ali", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].IsFollowing)
}

func TestSearchUsersEmptyQuery(t *testing.T) {
	env := newTestEnv()

	_, err := env.searchService.SearchUsers(context.Background(), "   ", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSearchBlips(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "Alice", "alice")
	ctx := context.Background()

	_, err := env.blipService.CreateBlip(ctx, "alice", "Good morning everyone", "")
	require.NoError(t, err)
	_, err = env.blipService.CreateBlip(ctx, "alice", "good grief", "")
	require.NoError(t, err)
	_, err = env.blipService.CreateBlip(ctx, "alice", "unrelated", "")
	require.NoError(t, err)

	results, err := env.searchService.SearchBlips(ctx, "GOOD")
	require.NoError(t, err)
	require.Len(t, results, 2)

	// newest first
	assert.Equal(t, "good grief", results[0].Content)
	assert.Equal(t, "Good morning everyone", results[1].Content)
}

func TestSearchBlipsEmptyQuery(t *testing.T) {
	env := newTestEnv()

	_, err := env.searchService.SearchBlips(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
