package handlers

import (
	"context"
	"encoding/json"
	"net/http"
)

//go:generate mockgen -source=reset_password.go -destination=reset_password_mock.go -package=handlers

// ResetRequester starts a password reset.
type ResetRequester interface {
	RequestPasswordReset(ctx context.Context, email string) error
}

// PasswordResetter completes a password reset.
type PasswordResetter interface {
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// ResetPasswordRequest represents the JSON body for a reset request
// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`
}

// ResetPasswordBody represents the JSON body for setting a new password
// swagger:model ResetPasswordBody
type ResetPasswordBody struct {
	// Token from the reset email
	// required: true
	Token string `json:"token"`

	// New password
	// required: true
	Password string `json:"password"`
}

// NewResetPasswordRequestHandler returns an HTTP handler that starts a password reset.
// The answer is the same whether or not the email is known.
// @Summary Request password reset
// @Description Sends reset instructions to the email if it belongs to a user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body handlers.ResetPasswordRequest true "Reset request"
// @Success 202 {object} handlers.MessageResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Router /reset_password_request [post]
func NewResetPasswordRequestHandler(svc ResetRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := svc.RequestPasswordReset(r.Context(), req.Email); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusAccepted, MessageResponse{
			Message: "Check your email for the instructions to reset your password",
		})
	}
}

// NewResetPasswordHandler returns an HTTP handler that sets a new password from a reset token.
// @Summary Reset password
// @Description Sets a new password. Each token can be used once.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body handlers.ResetPasswordBody true "Token and new password"
// @Success 200 {object} handlers.MessageResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid or expired token / invalid request"
// @Router /reset_password [post]
func NewResetPasswordHandler(svc PasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ResetPasswordBody

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := svc.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Your password has been reset."})
	}
}
