package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sbilibin2017/gw-microblog/internal/avatar"
	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/sbilibin2017/gw-microblog/internal/models"
)

//go:generate mockgen -source=users.go -destination=users_mock.go -package=services

// ProfileAvatarSize is the avatar edge in pixels on a profile page.
const ProfileAvatarSize = 128

// ProfileWriter updates user-editable fields and activity.
type ProfileWriter interface {
	UpdateProfile(ctx context.Context, userID int64, username string, aboutMe *string) error
	TouchLastSeen(ctx context.Context, userID int64) error
}

// UserService serves profiles and profile edits.
type UserService struct {
	reader  UserReader
	writer  ProfileWriter
	follows FollowReader
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, writer ProfileWriter, follows FollowReader) *UserService {
	return &UserService{
		reader:  reader,
		writer:  writer,
		follows: follows,
	}
}

// GetProfile returns the user named username as seen by viewerID.
func (svc *UserService) GetProfile(ctx context.Context, viewerID int64, username string) (*models.Profile, error) {
	user, err := svc.reader.GetByUsernameOrEmail(ctx, &username, nil)
	if err != nil {
		logger.Log.Errorw("failed to get user", "username", username, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	followers, err := svc.follows.CountFollowers(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to count followers", "userID", user.ID, "err", err)
		return nil, err
	}
	following, err := svc.follows.CountFollowing(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to count following", "userID", user.ID, "err", err)
		return nil, err
	}

	var isFollowing bool
	if viewerID != user.ID {
		isFollowing, err = svc.follows.IsFollowing(ctx, viewerID, user.ID)
		if err != nil {
			logger.Log.Errorw("failed to check follow", "follower", viewerID, "followed", user.ID, "err", err)
			return nil, err
		}
	}

	return &models.Profile{
		User:           user,
		Avatar:         avatar.URL(user.Email, ProfileAvatarSize),
		FollowerCount:  followers,
		FollowingCount: following,
		IsFollowing:    isFollowing,
	}, nil
}

// UpdateProfile changes the username and about-me of userID.
// An empty aboutMe clears it.
func (svc *UserService) UpdateProfile(ctx context.Context, userID int64, username, aboutMe string) (*models.UserDB, error) {
	username = strings.TrimSpace(username)
	if username == "" || utf8.RuneCountInString(username) > models.MaxUsernameLength {
		return nil, fmt.Errorf("%w: username must be 1-%d characters", ErrInvalidInput, models.MaxUsernameLength)
	}
	if utf8.RuneCountInString(aboutMe) > models.MaxAboutMeLength {
		return nil, ErrAboutMeTooLong
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "userID", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if username != user.Username {
		existing, err := svc.reader.GetByUsernameOrEmail(ctx, &username, nil)
		if err != nil {
			logger.Log.Errorw("failed to check user exists", "username", username, "err", err)
			return nil, err
		}
		if existing != nil {
			return nil, ErrUserAlreadyExists
		}
	}

	var about *string
	if aboutMe != "" {
		about = &aboutMe
	}

	err = svc.writer.UpdateProfile(ctx, userID, username, about)
	if errors.Is(err, models.ErrDuplicate) {
		return nil, ErrUserAlreadyExists
	}
	if err != nil {
		logger.Log.Errorw("failed to update profile", "userID", userID, "err", err)
		return nil, err
	}

	user.Username = username
	user.AboutMe = about
	return user, nil
}

// TouchLastSeen records activity of userID.
func (svc *UserService) TouchLastSeen(ctx context.Context, userID int64) error {
	if err := svc.writer.TouchLastSeen(ctx, userID); err != nil {
		logger.Log.Errorw("failed to update last seen", "userID", userID, "err", err)
		return err
	}
	return nil
}
