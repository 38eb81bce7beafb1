package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository(t *testing.T) {
	s := NewStore(openTestDB(t))
	ctx := context.Background()
	for _, u := range []string{"alice", "bob", "carol"} {
		seedUser(t, s, u)
	}

	created, err := s.Follows().Create(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.Follows().Create(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, created, "second follow is a no-op")

	_, err = s.Follows().Create(ctx, "alice", "carol")
	require.NoError(t, err)
	_, err = s.Follows().Create(ctx, "carol", "bob")
	require.NoError(t, err)

	ok, err := s.Follows().Exists(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.Follows().Exists(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	following, err := s.Follows().ListFollowing(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, following, 2)
	assert.Equal(t, "bob", following[0].Username)
	assert.Equal(t, "carol", following[1].Username)

	followers, err := s.Follows().ListFollowers(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.Equal(t, "alice", followers[0].Username)
	assert.Equal(t, "Firstalice", followers[0].FirstName)

	none, err := s.Follows().ListFollowers(ctx, "alice")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	require.NoError(t, s.Follows().Delete(ctx, "alice", "bob"))
	require.NoError(t, s.Follows().Delete(ctx, "alice", "bob"))
	ok, err = s.Follows().Exists(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Follows().Create(ctx, "alice", "ghost")
	assert.Error(t, err, "followee must exist")
}
