package repository

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
)

func seedBenchUsers(b *testing.B, s *Store, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("u%04d", i)
		seedUser(b, s, names[i])
	}
	return names
}

func BenchmarkFollowWrite(b *testing.B) {
	s := NewStore(openTestDB(b))
	ctx := context.Background()
	users := seedBenchUsers(b, s, 200)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		from := users[rand.Intn(len(users))]
		to := users[rand.Intn(len(users))]
		if from == to {
			continue
		}
		_, _ = s.Follows().Create(ctx, from, to)
	}
}

func BenchmarkListFollowersAndFollowing(b *testing.B) {
	s := NewStore(openTestDB(b))
	ctx := context.Background()

	// u0000 关注所有人，同时被所有人关注
	const n = 500
	users := seedBenchUsers(b, s, n)
	hub := users[0]
	for _, u := range users[1:] {
		_, _ = s.Follows().Create(ctx, u, hub)
		_, _ = s.Follows().Create(ctx, hub, u)
	}

	b.ResetTimer()
	b.Run("ListFollowers", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = s.Follows().ListFollowers(ctx, hub)
		}
	})
	b.Run("ListFollowing", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = s.Follows().ListFollowing(ctx, hub)
		}
	})
}
