package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/sbilibin2017/gw-microblog/internal/models"
)

//go:generate mockgen -source=graph.go -destination=graph_mock.go -package=services

// Error variables
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCannotFollowSelf = errors.New("cannot follow or unfollow yourself")
)

// UserByNameGetter looks up a user by username.
type UserByNameGetter interface {
	GetByUsernameOrEmail(ctx context.Context, username *string, email *string) (*models.UserDB, error)
}

// FollowWriter adds and removes follow edges.
type FollowWriter interface {
	Save(ctx context.Context, followerID, followedID int64) (bool, error)
	Delete(ctx context.Context, followerID, followedID int64) (bool, error)
}

// FollowReader answers questions about follow edges.
type FollowReader interface {
	IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error)
	CountFollowers(ctx context.Context, userID int64) (int, error)
	CountFollowing(ctx context.Context, userID int64) (int, error)
}

// GraphService maintains the directed follow relation between users.
type GraphService struct {
	users       UserByNameGetter
	writer      FollowWriter
	reader      FollowReader
	kafkaWriter KafkaWriter
}

// NewGraphService creates a new GraphService instance.
func NewGraphService(users UserByNameGetter, writer FollowWriter, reader FollowReader, kafkaWriter KafkaWriter) *GraphService {
	return &GraphService{
		users:       users,
		writer:      writer,
		reader:      reader,
		kafkaWriter: kafkaWriter,
	}
}

func (svc *GraphService) target(ctx context.Context, followerID int64, username string) (*models.UserDB, error) {
	user, err := svc.users.GetByUsernameOrEmail(ctx, &username, nil)
	if err != nil {
		logger.Log.Errorw("failed to get user", "username", username, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.ID == followerID {
		return nil, ErrCannotFollowSelf
	}
	return user, nil
}

// Follow makes followerID follow the user named username. Following twice is a no-op.
func (svc *GraphService) Follow(ctx context.Context, followerID int64, username string) (*models.UserDB, error) {
	followed, err := svc.target(ctx, followerID, username)
	if err != nil {
		return nil, err
	}

	created, err := svc.writer.Save(ctx, followerID, followed.ID)
	if err != nil {
		logger.Log.Errorw("failed to follow", "follower", followerID, "followed", followed.ID, "err", err)
		return nil, err
	}

	if created {
		publishEvent(ctx, svc.kafkaWriter, models.EventUserFollowed, followerID, map[string]string{
			"followed_id": strconv.FormatInt(followed.ID, 10),
		})
	}
	return followed, nil
}

// Unfollow removes the edge from followerID to the user named username, if any.
func (svc *GraphService) Unfollow(ctx context.Context, followerID int64, username string) (*models.UserDB, error) {
	followed, err := svc.target(ctx, followerID, username)
	if err != nil {
		return nil, err
	}

	removed, err := svc.writer.Delete(ctx, followerID, followed.ID)
	if err != nil {
		logger.Log.Errorw("failed to unfollow", "follower", followerID, "followed", followed.ID, "err", err)
		return nil, err
	}

	if removed {
		publishEvent(ctx, svc.kafkaWriter, models.EventUserUnfollowed, followerID, map[string]string{
			"followed_id": strconv.FormatInt(followed.ID, 10),
		})
	}
	return followed, nil
}

// IsFollowing reports whether followerID follows followedID.
func (svc *GraphService) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	return svc.reader.IsFollowing(ctx, followerID, followedID)
}

// FollowerCount returns how many users follow userID.
func (svc *GraphService) FollowerCount(ctx context.Context, userID int64) (int, error) {
	return svc.reader.CountFollowers(ctx, userID)
}

// FollowingCount returns how many users userID follows.
func (svc *GraphService) FollowingCount(ctx context.Context, userID int64) (int, error) {
	return svc.reader.CountFollowing(ctx, userID)
}
