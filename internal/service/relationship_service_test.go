package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollow(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.register(t, "alice", "bob", "carol")

	out, err := f.rels.Follow(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, FollowCreated, out)

	out, err = f.rels.Follow(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, FollowAlreadyExists, out)
	assert.Equal(t, "already following", out.String())

	_, err = f.rels.Follow(ctx, "alice", "alice")
	assert.ErrorIs(t, err, ErrSelfFollow)

	_, err = f.rels.Follow(ctx, "alice", "ghost")
	assert.ErrorIs(t, err, ErrUnknownUser)

	_, err = f.rels.Follow(ctx, "ghost", "alice")
	assert.ErrorIs(t, err, ErrUnknownUser)

	_, err = f.rels.Follow(ctx, "", "alice")
	assert.True(t, IsValidation(err))

	_, err = f.rels.Follow(ctx, "carol", "bob")
	require.NoError(t, err)

	followers, err := f.rels.ListFollowers(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.Equal(t, "alice", followers[0].Username)
	assert.Equal(t, "carol", followers[1].Username)

	following, err := f.rels.ListFollowing(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "bob", following[0].Username)

	_, err = f.rels.ListFollowing(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUnknownUser)

	require.NoError(t, f.rels.Unfollow(ctx, "alice", "bob"))
	require.NoError(t, f.rels.Unfollow(ctx, "alice", "bob"))
	following, err = f.rels.ListFollowing(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, following)
}
