package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-microblog/internal/models"
	"github.com/sbilibin2017/gw-microblog/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileHandler(t *testing.T) {
	about := "hi there"
	susan := &models.UserDB{ID: 2, Username: "susan", Email: "susan@example.com", AboutMe: &about}

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		profiles := NewMockProfileGetter(ctrl)
		posts := NewMockUserPostsGetter(ctrl)

		profiles.EXPECT().GetProfile(gomock.Any(), int64(1), "susan").Return(&models.Profile{
			User:           susan,
			Avatar:         "https://avatar",
			FollowerCount:  4,
			FollowingCount: 2,
			IsFollowing:    true,
		}, nil)
		posts.EXPECT().UserPosts(gomock.Any(), int64(2), 2).Return(samplePage(), nil)

		req := httptest.NewRequest(http.MethodGet, "/users/susan?page=2", nil)
		req = withURLParam(withUser(req, 1), "username", "susan")
		rr := httptest.NewRecorder()
		NewProfileHandler(profiles, posts)(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp ProfileResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "susan", resp.Username)
		assert.Equal(t, &about, resp.AboutMe)
		assert.Equal(t, "https://avatar", resp.Avatar)
		assert.Equal(t, 4, resp.FollowerCount)
		assert.Equal(t, 2, resp.FollowingCount)
		assert.True(t, resp.IsFollowing)
		assert.Len(t, resp.Posts.Posts, 2)
		assert.NotContains(t, rr.Body.String(), "susan@example.com")
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		profiles := NewMockProfileGetter(ctrl)
		profiles.EXPECT().GetProfile(gomock.Any(), int64(1), "ghost").Return(nil, services.ErrUserNotFound)

		req := withURLParam(withUser(httptest.NewRequest(http.MethodGet, "/users/ghost", nil), 1), "username", "ghost")
		rr := httptest.NewRecorder()
		NewProfileHandler(profiles, NewMockUserPostsGetter(ctrl))(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, map[string]any{"error": "User not found"}, decodeBody(t, rr))
	})

	t.Run("posts error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		profiles := NewMockProfileGetter(ctrl)
		posts := NewMockUserPostsGetter(ctrl)
		profiles.EXPECT().GetProfile(gomock.Any(), int64(1), "susan").Return(&models.Profile{User: susan}, nil)
		posts.EXPECT().UserPosts(gomock.Any(), int64(2), 1).Return(nil, errors.New("db error"))

		req := withURLParam(withUser(httptest.NewRequest(http.MethodGet, "/users/susan", nil), 1), "username", "susan")
		rr := httptest.NewRecorder()
		NewProfileHandler(profiles, posts)(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestUpdateProfileHandler(t *testing.T) {
	about := "new bio"

	tests := []struct {
		name         string
		authed       bool
		body         string
		mockSetup    func(m *MockProfileUpdater)
		expectedCode int
		expectedBody map[string]any
	}{
		{
			name:   "updated",
			authed: true,
			body:   `{"username":"johnny","about_me":"new bio"}`,
			mockSetup: func(m *MockProfileUpdater) {
				m.EXPECT().UpdateProfile(gomock.Any(), int64(1), "johnny", "new bio").
					Return(&models.UserDB{ID: 1, Username: "johnny", AboutMe: &about}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: map[string]any{"id": float64(1), "username": "johnny", "about_me": "new bio"},
		},
		{
			name:   "username taken",
			authed: true,
			body:   `{"username":"susan"}`,
			mockSetup: func(m *MockProfileUpdater) {
				m.EXPECT().UpdateProfile(gomock.Any(), int64(1), "susan", "").Return(nil, services.ErrUserAlreadyExists)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]any{"error": "Username or email already exists"},
		},
		{
			name:   "bio too long",
			authed: true,
			body:   `{"username":"john","about_me":"x"}`,
			mockSetup: func(m *MockProfileUpdater) {
				m.EXPECT().UpdateProfile(gomock.Any(), int64(1), "john", "x").Return(nil, services.ErrAboutMeTooLong)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]any{"error": services.ErrAboutMeTooLong.Error()},
		},
		{
			name:         "unauthenticated",
			body:         `{"username":"john"}`,
			expectedCode: http.StatusUnauthorized,
			expectedBody: map[string]any{"error": "Unauthorized"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockSvc := NewMockProfileUpdater(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			req := httptest.NewRequest(http.MethodPut, "/users/me", bytes.NewBufferString(tt.body))
			if tt.authed {
				req = withUser(req, 1)
			}
			rr := httptest.NewRecorder()
			NewUpdateProfileHandler(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectedBody, decodeBody(t, rr))
		})
	}
}
