package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/sbilibin2017/gw-microblog/internal/models"
)

//go:generate mockgen -source=posts.go -destination=posts_mock.go -package=handlers

// PostCreator stores a new post.
type PostCreator interface {
	CreatePost(ctx context.Context, userID int64, body string, language *string) (*models.PostDB, error)
}

// FeedGetter returns a user's home timeline.
type FeedGetter interface {
	FeedFor(ctx context.Context, userID int64, page int) (*models.PostPage, error)
}

// Explorer returns every post.
type Explorer interface {
	Explore(ctx context.Context, page int) (*models.PostPage, error)
}

// CreatePostRequest represents the JSON body of a new post
// swagger:model CreatePostRequest
type CreatePostRequest struct {
	// Post text, 1 to 140 characters
	// required: true
	// default: Hello, world!
	Body string `json:"body"`

	// Language code of the text, if known
	// default: en
	Language *string `json:"language,omitempty"`
}

// NewCreatePostHandler returns an HTTP handler that publishes a post as the current user.
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body handlers.CreatePostRequest true "Post"
// @Success 201 {object} handlers.PostResponse
// @Failure 400 {object} handlers.ErrorResponse "Empty or too long post"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /posts [post]
// @Security BearerAuth
func NewCreatePostHandler(svc PostCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		var req CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		post, err := svc.CreatePost(r.Context(), userID, req.Body, req.Language)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		logger.Log.Infow("post created", "postID", post.ID, "userID", userID)
		writeJSON(w, http.StatusCreated, PostResponse{
			ID:       post.ID,
			Body:     post.Body,
			Language: post.Language,
			Created:  post.Timestamp,
		})
	}
}

// NewFeedHandler returns an HTTP handler for the current user's home timeline.
// @Summary Home timeline
// @Description Posts by the current user and everyone they follow, newest first
// @Tags posts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Success 200 {object} handlers.PostPageResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /feed [get]
// @Security BearerAuth
func NewFeedHandler(svc FeedGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(w, r)
		if !ok {
			return
		}

		page, err := svc.FeedFor(r.Context(), userID, pageParam(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newPostPageResponse(page))
	}
}

// NewExploreHandler returns an HTTP handler listing every post.
// @Summary Explore
// @Description All posts, newest first
// @Tags posts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Success 200 {object} handlers.PostPageResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /explore [get]
// @Security BearerAuth
func NewExploreHandler(svc Explorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.Explore(r.Context(), pageParam(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newPostPageResponse(page))
	}
}
