package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowingFeed(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "Alice", "alice")
	env.addUser("bob", "Bob", "bob")
	env.addUser("carol", "Carol", "carol")
	ctx := context.Background()

	require.NoError(t, env.followService.Follow(ctx, "alice", "bob"))

	_, err := env.blipService.CreateBlip(ctx, "alice", "own post", "")
	require.NoError(t, err)
	_, err = env.blipService.CreateBlip(ctx, "bob", "followed post", "")
	require.NoError(t, err)
	_, err = env.blipService.CreateBlip(ctx, "carol", "stranger post", "")
	require.NoError(t, err)

	feed, err := env.feedService.FollowingFeed(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, feed, 2)

	// newest first, own posts included, non-followed excluded
	assert.Equal(t, "followed post", feed[0].Content)
	assert.Equal(t, "own post", feed[1].Content)
}

func TestFollowingFeedMissingUser(t *testing.T) {
	env := newTestEnv()

	_, err := env.feedService.FollowingFeed(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGlobalFeed(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "Alice", "alice")
	env.addUser("bob", "Bob", "bob")
	ctx := context.Background()

	_, err := env.blipService.CreateBlip(ctx, "alice", "older", "")
	require.NoError(t, err)
	_, err = env.blipService.CreateBlip(ctx, "bob", "newer", "")
	require.NoError(t, err)

	feed, err := env.feedService.GlobalFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "newer", feed[0].Content)
	assert.Equal(t, "older", feed[1].Content)
}

func TestProfileTimelineMergesReblips(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "Alice", "alice")
	env.addUser("bob", "Bob", "bob")
	ctx := context.Background()

	authored, err := env.blipService.CreateBlip(ctx, "alice", "authored", "")
	require.NoError(t, err)
	other, err := env.blipService.CreateBlip(ctx, "bob", "reblipped by alice", "")
	require.NoError(t, err)

	_, err = env.blipService.ToggleReblip(ctx, other.ID.Hex(), "alice")
	require.NoError(t, err)

	timeline, err := env.feedService.ProfileTimeline(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, timeline, 2)

	// ordered by the blip's own creation time, newest first
	assert.Equal(t, other.ID, timeline[0].ID)
	assert.Equal(t, authored.ID, timeline[1].ID)
}

func TestProfileTimelineDeduplicates(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "Alice", "alice")
	ctx := context.Background()

	own, err := env.blipService.CreateBlip(ctx, "alice", "self reblip", "")
	require.NoError(t, err)
	_, err = env.blipService.ToggleReblip(ctx, own.ID.Hex(), "alice")
	require.NoError(t, err)

	timeline, err := env.feedService.ProfileTimeline(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, timeline, 1)
}

func TestLikedTimeline(t *testing.T) {
	env := newTestEnv()
	env.addUser("alice", "Alice", "alice")
	env.addUser("bob", "Bob", "bob")
	ctx := context.Background()

	liked, err := env.blipService.CreateBlip(ctx, "bob", "liked one", "")
	require.NoError(t, err)
	_, err = env.blipService.CreateBlip(ctx, "bob", "other one", "")
	require.NoError(t, err)

	_, err = env.blipService.ToggleLike(ctx, liked.ID.Hex(), "alice")
	require.NoError(t, err)

	timeline, err := env.feedService.LikedTimeline(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, timeline, 1)
	assert.Equal(t, liked.ID, timeline[0].ID)
}
