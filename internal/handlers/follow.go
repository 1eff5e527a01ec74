package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-microblog/internal/models"
)

//go:generate mockgen -source=follow.go -destination=follow_mock.go -package=handlers

// Follower makes the current user follow another.
type Follower interface {
	Follow(ctx context.Context, followerID int64, username string) (*models.UserDB, error)
}

// Unfollower makes the current user stop following another.
type Unfollower interface {
	Unfollow(ctx context.Context, followerID int64, username string) (*models.UserDB, error)
}

// NewFollowHandler returns an HTTP handler that follows {username}. Repeating it is harmless.
// @Summary Follow a user
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} handlers.MessageResponse
// @Failure 400 {object} handlers.ErrorResponse "Cannot follow yourself"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users/{username}/follow [post]
// @Security BearerAuth
func NewFollowHandler(svc Follower) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		user, err := svc.Follow(r.Context(), userID, chi.URLParam(r, "username"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{
			Message: fmt.Sprintf("You are following %s!", user.Username),
		})
	}
}

// NewUnfollowHandler returns an HTTP handler that unfollows {username}. Repeating it is harmless.
// @Summary Unfollow a user
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} handlers.MessageResponse
// @Failure 400 {object} handlers.ErrorResponse "Cannot unfollow yourself"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users/{username}/unfollow [post]
// @Security BearerAuth
func NewUnfollowHandler(svc Unfollower) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		user, err := svc.Unfollow(r.Context(), userID, chi.URLParam(r, "username"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{
			Message: fmt.Sprintf("You are not following %s.", user.Username),
		})
	}
}
