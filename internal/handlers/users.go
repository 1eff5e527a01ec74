package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-microblog/internal/models"
)

//go:generate mockgen -source=users.go -destination=users_mock.go -package=handlers

// ProfileGetter returns a user profile as seen by a viewer.
type ProfileGetter interface {
	GetProfile(ctx context.Context, viewerID int64, username string) (*models.Profile, error)
}

// UserPostsGetter returns one author's posts.
type UserPostsGetter interface {
	UserPosts(ctx context.Context, userID int64, page int) (*models.PostPage, error)
}

// ProfileUpdater edits the current user's profile.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, userID int64, username, aboutMe string) (*models.UserDB, error)
}

// ProfileResponse is a user page
// swagger:model ProfileResponse
type ProfileResponse struct {
	ID             int64            `json:"id"`
	Username       string           `json:"username"`
	AboutMe        *string          `json:"about_me,omitempty"`
	LastSeen       time.Time        `json:"last_seen"`
	Avatar         string           `json:"avatar"`
	FollowerCount  int              `json:"follower_count"`
	FollowingCount int              `json:"following_count"`
	IsFollowing    bool             `json:"is_following"`
	Posts          PostPageResponse `json:"posts"`
}

// UpdateProfileRequest represents the JSON body of a profile edit
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	// New username
	// required: true
	// default: john_doe
	Username string `json:"username"`

	// About me, at most 140 characters; empty clears it
	AboutMe string `json:"about_me"`
}

// UserResponse is the current user after an edit
// swagger:model UserResponse
type UserResponse struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	AboutMe  *string `json:"about_me,omitempty"`
}

// NewProfileHandler returns an HTTP handler for a user page.
// @Summary User profile
// @Description Profile, follow counts and a page of the user's posts
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} handlers.ProfileResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users/{username} [get]
// @Security BearerAuth
func NewProfileHandler(profiles ProfileGetter, posts UserPostsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewerID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		profile, err := profiles.GetProfile(r.Context(), viewerID, chi.URLParam(r, "username"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		page, err := posts.UserPosts(r.Context(), profile.User.ID, pageParam(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ProfileResponse{
			ID:             profile.User.ID,
			Username:       profile.User.Username,
			AboutMe:        profile.User.AboutMe,
			LastSeen:       profile.User.LastSeen,
			Avatar:         profile.Avatar,
			FollowerCount:  profile.FollowerCount,
			FollowingCount: profile.FollowingCount,
			IsFollowing:    profile.IsFollowing,
			Posts:          newPostPageResponse(page),
		})
	}
}

// NewUpdateProfileHandler returns an HTTP handler that edits the current user's profile.
// @Summary Edit profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body handlers.UpdateProfileRequest true "Profile"
// @Success 200 {object} handlers.UserResponse
// @Failure 400 {object} handlers.ErrorResponse "Username taken / invalid input"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /users/me [put]
// @Security BearerAuth
func NewUpdateProfileHandler(svc ProfileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		user, err := svc.UpdateProfile(r.Context(), userID, req.Username, req.AboutMe)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, UserResponse{
			ID:       user.ID,
			Username: user.Username,
			AboutMe:  user.AboutMe,
		})
	}
}
