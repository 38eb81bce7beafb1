package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/d60-Lab/bloghub/internal/model"
	"github.com/d60-Lab/bloghub/internal/repository"
	"github.com/d60-Lab/bloghub/pkg/logger"
)

// FollowOutcome 关注结果；重复关注不是错误
type FollowOutcome int

const (
	FollowCreated FollowOutcome = iota + 1
	FollowAlreadyExists
)

func (o FollowOutcome) String() string {
	switch o {
	case FollowCreated:
		return "followed"
	case FollowAlreadyExists:
		return "already following"
	}
	return "unknown"
}

// RelationshipService 关系链服务
type RelationshipService interface {
	Follow(ctx context.Context, follower, followee string) (FollowOutcome, error)
	Unfollow(ctx context.Context, follower, followee string) error
	ListFollowing(ctx context.Context, username string) ([]model.UserSummary, error)
	ListFollowers(ctx context.Context, username string) ([]model.UserSummary, error)
}

type relationshipService struct {
	store *repository.Store
	inv   Invalidator
}

func NewRelationshipService(store *repository.Store, inv Invalidator) RelationshipService {
	return &relationshipService{store: store, inv: inv}
}

func (s *relationshipService) Follow(ctx context.Context, follower, followee string) (FollowOutcome, error) {
	follower = strings.TrimSpace(follower)
	followee = strings.TrimSpace(followee)
	if follower == "" || followee == "" {
		return 0, invalid("follower and followee are required")
	}
	if follower == followee {
		return 0, ErrSelfFollow
	}

	var created bool
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		users := tx.Users()
		for _, u := range [...]string{follower, followee} {
			ok, err := users.Exists(ctx, u)
			if err != nil {
				return err
			}
			if !ok {
				return ErrUnknownUser
			}
		}
		var err error
		created, err = tx.Follows().Create(ctx, follower, followee)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrUnknownUser) {
			return 0, err
		}
		return 0, fmt.Errorf("follow: %w", err)
	}
	if !created {
		return FollowAlreadyExists, nil
	}
	invalidate(ctx, s.inv)
	logger.Debug("follow created", zap.String("follower", follower), zap.String("followee", followee))
	return FollowCreated, nil
}

func (s *relationshipService) Unfollow(ctx context.Context, follower, followee string) error {
	follower = strings.TrimSpace(follower)
	followee = strings.TrimSpace(followee)
	if err := s.store.Follows().Delete(ctx, follower, followee); err != nil {
		return fmt.Errorf("unfollow: %w", err)
	}
	invalidate(ctx, s.inv)
	return nil
}

func (s *relationshipService) ListFollowing(ctx context.Context, username string) ([]model.UserSummary, error) {
	if err := s.mustExist(ctx, username); err != nil {
		return nil, err
	}
	return s.store.Follows().ListFollowing(ctx, strings.TrimSpace(username))
}

func (s *relationshipService) ListFollowers(ctx context.Context, username string) ([]model.UserSummary, error) {
	if err := s.mustExist(ctx, username); err != nil {
		return nil, err
	}
	return s.store.Follows().ListFollowers(ctx, strings.TrimSpace(username))
}

func (s *relationshipService) mustExist(ctx context.Context, username string) error {
	ok, err := s.store.Users().Exists(ctx, strings.TrimSpace(username))
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownUser
	}
	return nil
}
