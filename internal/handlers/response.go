package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sbilibin2017/gw-microblog/internal/avatar"
	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/sbilibin2017/gw-microblog/internal/middlewares"
	"github.com/sbilibin2017/gw-microblog/internal/models"
	"github.com/sbilibin2017/gw-microblog/internal/services"
)

// PostAvatarSize is the avatar edge in pixels next to a post.
const PostAvatarSize = 36

// ErrorResponse represents an error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// MessageResponse represents a plain confirmation
// swagger:model MessageResponse
type MessageResponse struct {
	// Message
	Message string `json:"message"`
}

// PostResponse is a post as shown in a timeline
// swagger:model PostResponse
type PostResponse struct {
	ID       int64     `json:"id"`
	Body     string    `json:"body"`
	Language *string   `json:"language,omitempty"`
	Author   string    `json:"author,omitempty"`
	Avatar   string    `json:"avatar,omitempty"`
	Created  time.Time `json:"timestamp"`
}

// PostPageResponse is one page of a timeline
// swagger:model PostPageResponse
type PostPageResponse struct {
	Posts   []PostResponse `json:"posts"`
	Page    int            `json:"page"`
	HasNext bool           `json:"has_next"`
	HasPrev bool           `json:"has_prev"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeServiceError maps service errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUserAlreadyExists):
		writeError(w, http.StatusBadRequest, "Username or email already exists")
	case errors.Is(err, services.ErrCannotFollowSelf):
		writeError(w, http.StatusBadRequest, "You cannot follow or unfollow yourself")
	case errors.Is(err, services.ErrTokenInvalid):
		writeError(w, http.StatusBadRequest, "Invalid or expired token")
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, services.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	default:
		logger.Log.Errorw("internal server error", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// currentUserID returns the authenticated user, answering 401 when there is none.
func currentUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middlewares.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	}
	return userID, ok
}

// pageParam reads ?page=, falling back to the first page.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func newPostPageResponse(page *models.PostPage) PostPageResponse {
	posts := make([]PostResponse, 0, len(page.Posts))
	for _, p := range page.Posts {
		posts = append(posts, PostResponse{
			ID:       p.ID,
			Body:     p.Body,
			Language: p.Language,
			Author:   p.AuthorUsername,
			Avatar:   avatar.URL(p.AuthorEmail, PostAvatarSize),
			Created:  p.Timestamp,
		})
	}
	return PostPageResponse{
		Posts:   posts,
		Page:    page.Page,
		HasNext: page.HasNext,
		HasPrev: page.HasPrev,
	}
}
