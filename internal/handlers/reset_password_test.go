package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-microblog/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestResetPasswordRequestHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockResetRequester)
		expectedCode int
		expectedBody map[string]any
	}{
		{
			name: "accepted",
			body: `{"email":"john@example.com"}`,
			mockSetup: func(m *MockResetRequester) {
				m.EXPECT().RequestPasswordReset(gomock.Any(), "john@example.com").Return(nil)
			},
			expectedCode: http.StatusAccepted,
			expectedBody: map[string]any{"message": "Check your email for the instructions to reset your password"},
		},
		{
			name:         "missing email",
			body:         `{}`,
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]any{"error": "Invalid request body"},
		},
		{
			name:         "invalid json",
			body:         `{invalid`,
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]any{"error": "Invalid request body"},
		},
		{
			name: "internal error",
			body: `{"email":"john@example.com"}`,
			mockSetup: func(m *MockResetRequester) {
				m.EXPECT().RequestPasswordReset(gomock.Any(), "john@example.com").Return(errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: map[string]any{"error": "Internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockSvc := NewMockResetRequester(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			req := httptest.NewRequest(http.MethodPost, "/reset_password_request", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			NewResetPasswordRequestHandler(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectedBody, decodeBody(t, rr))
		})
	}
}

func TestResetPasswordHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		mockSetup    func(m *MockPasswordResetter)
		expectedCode int
		expectedBody map[string]any
	}{
		{
			name: "password reset",
			body: `{"token":"tok","password":"new"}`,
			mockSetup: func(m *MockPasswordResetter) {
				m.EXPECT().ResetPassword(gomock.Any(), "tok", "new").Return(nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: map[string]any{"message": "Your password has been reset."},
		},
		{
			name: "bad token",
			body: `{"token":"tok","password":"new"}`,
			mockSetup: func(m *MockPasswordResetter) {
				m.EXPECT().ResetPassword(gomock.Any(), "tok", "new").Return(services.ErrTokenInvalid)
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]any{"error": "Invalid or expired token"},
		},
		{
			name: "empty password",
			body: `{"token":"tok","password":""}`,
			mockSetup: func(m *MockPasswordResetter) {
				m.EXPECT().ResetPassword(gomock.Any(), "tok", "").
					Return(fmt.Errorf("%w: password must not be empty", services.ErrInvalidInput))
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]any{"error": "invalid input: password must not be empty"},
		},
		{
			name:         "invalid json",
			body:         `nope`,
			expectedCode: http.StatusBadRequest,
			expectedBody: map[string]any{"error": "Invalid request body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockSvc := NewMockPasswordResetter(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			req := httptest.NewRequest(http.MethodPost, "/reset_password", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			NewResetPasswordHandler(mockSvc)(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectedBody, decodeBody(t, rr))
		})
	}
}
