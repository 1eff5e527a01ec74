package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-microblog/internal/avatar"
	"github.com/sbilibin2017/gw-microblog/internal/models"
	"github.com/sbilibin2017/gw-microblog/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePage() *models.PostPage {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return &models.PostPage{
		Posts: []models.FeedPost{
			{
				PostDB:         models.PostDB{ID: 2, Body: "second", Timestamp: ts, UserID: 1},
				AuthorUsername: "john",
				AuthorEmail:    "john@example.com",
			},
			{
				PostDB:         models.PostDB{ID: 1, Body: "first", Timestamp: ts.Add(-time.Hour), UserID: 2},
				AuthorUsername: "susan",
				AuthorEmail:    "susan@example.com",
			},
		},
		Page:    2,
		HasNext: true,
		HasPrev: true,
	}
}

func TestCreatePostHandler(t *testing.T) {
	en := "en"

	tests := []struct {
		name         string
		authed       bool
		body         string
		mockSetup    func(m *MockPostCreator)
		expectedCode int
		expectedErr  string
	}{
		{
			name:   "created",
			authed: true,
			body:   `{"body":"hello","language":"en"}`,
			mockSetup: func(m *MockPostCreator) {
				m.EXPECT().CreatePost(gomock.Any(), int64(1), "hello", &en).
					Return(&models.PostDB{ID: 9, Body: "hello", UserID: 1, Language: &en}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:   "too long",
			authed: true,
			body:   `{"body":"x"}`,
			mockSetup: func(m *MockPostCreator) {
				m.EXPECT().CreatePost(gomock.Any(), int64(1), "x", nil).Return(nil, services.ErrPostTooLong)
			},
			expectedCode: http.StatusBadRequest,
			expectedErr:  services.ErrPostTooLong.Error(),
		},
		{
			name:   "empty",
			authed: true,
			body:   `{"body":""}`,
			mockSetup: func(m *MockPostCreator) {
				m.EXPECT().CreatePost(gomock.Any(), int64(1), "", nil).Return(nil, services.ErrEmptyPost)
			},
			expectedCode: http.StatusBadRequest,
			expectedErr:  services.ErrEmptyPost.Error(),
		},
		{
			name:         "invalid json",
			authed:       true,
			body:         `{`,
			expectedCode: http.StatusBadRequest,
			expectedErr:  "Invalid request body",
		},
		{
			name:         "unauthenticated",
			body:         `{"body":"hello"}`,
			expectedCode: http.StatusUnauthorized,
			expectedErr:  "Unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockSvc := NewMockPostCreator(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewBufferString(tt.body))
			if tt.authed {
				req = withUser(req, 1)
			}
			rr := httptest.NewRecorder()
			NewCreatePostHandler(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			resp := decodeBody(t, rr)
			if tt.expectedErr != "" {
				assert.Equal(t, tt.expectedErr, resp["error"])
			} else {
				assert.Equal(t, float64(9), resp["id"])
				assert.Equal(t, "hello", resp["body"])
				assert.Equal(t, "en", resp["language"])
			}
		})
	}
}

func TestFeedHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := NewMockFeedGetter(ctrl)

	mockSvc.EXPECT().FeedFor(gomock.Any(), int64(1), 2).Return(samplePage(), nil)

	req := withUser(httptest.NewRequest(http.MethodGet, "/feed?page=2", nil), 1)
	rr := httptest.NewRecorder()
	NewFeedHandler(mockSvc)(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp PostPageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Page)
	assert.True(t, resp.HasNext)
	assert.True(t, resp.HasPrev)
	require.Len(t, resp.Posts, 2)
	assert.Equal(t, "second", resp.Posts[0].Body)
	assert.Equal(t, "john", resp.Posts[0].Author)
	assert.Equal(t, avatar.URL("john@example.com", PostAvatarSize), resp.Posts[0].Avatar)
	assert.Equal(t, "susan", resp.Posts[1].Author)
	assert.NotContains(t, rr.Body.String(), "susan@example.com")
}

func TestFeedHandler_Errors(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rr := httptest.NewRecorder()
		NewFeedHandler(NewMockFeedGetter(ctrl))(rr, httptest.NewRequest(http.MethodGet, "/feed", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("service error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockSvc := NewMockFeedGetter(ctrl)
		mockSvc.EXPECT().FeedFor(gomock.Any(), int64(1), 1).Return(nil, errors.New("db error"))

		rr := httptest.NewRecorder()
		NewFeedHandler(mockSvc)(rr, withUser(httptest.NewRequest(http.MethodGet, "/feed?page=abc", nil), 1))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestExploreHandler(t *testing.T) {
	tests := []struct {
		query    string
		wantPage int
	}{
		{query: "", wantPage: 1},
		{query: "?page=3", wantPage: 3},
		{query: "?page=0", wantPage: 1},
		{query: "?page=-2", wantPage: 1},
		{query: "?page=x", wantPage: 1},
	}

	for _, tt := range tests {
		t.Run("page"+tt.query, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockSvc := NewMockExplorer(ctrl)
			mockSvc.EXPECT().Explore(gomock.Any(), tt.wantPage).
				Return(&models.PostPage{Posts: []models.FeedPost{}, Page: tt.wantPage}, nil)

			rr := httptest.NewRecorder()
			NewExploreHandler(mockSvc)(rr, httptest.NewRequest(http.MethodGet, "/explore"+tt.query, nil))

			assert.Equal(t, http.StatusOK, rr.Code)
			var resp PostPageResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantPage, resp.Page)
			assert.NotNil(t, resp.Posts)
			assert.Contains(t, rr.Body.String(), `"posts":[]`)
		})
	}
}
