package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sbilibin2017/gw-microblog/internal/jwt"
	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/sbilibin2017/gw-microblog/internal/models"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

// DefaultResetTokenTTL is how long a password reset token stays valid.
const DefaultResetTokenTTL = 10 * time.Minute

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenInvalid       = errors.New("invalid or expired token")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsernameOrEmail(ctx context.Context, username *string, email *string) (*models.UserDB, error)
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, email, passwordHash string) (*models.UserDB, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// TokenIssuer signs and checks access and password reset tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, userID int64) (string, error)
	GenerateResetToken(ctx context.Context, userID int64, ttl time.Duration) (string, error)
	ParseResetToken(ctx context.Context, tokenString string) jwt.ResetToken
}

// SpentTokenStore remembers reset tokens that were already used.
type SpentTokenStore interface {
	MarkSpent(ctx context.Context, tokenID string, ttl time.Duration) (bool, error)
	IsSpent(ctx context.Context, tokenID string) (bool, error)
}

// AuthService handles registration, login and password resets.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	tokens      TokenIssuer
	spent       SpentTokenStore
	kafkaWriter KafkaWriter
	resetTTL    time.Duration
}

// NewAuthService creates a new AuthService instance.
// A non-positive resetTTL falls back to DefaultResetTokenTTL.
func NewAuthService(
	reader UserReader,
	writer UserWriter,
	tokens TokenIssuer,
	spent SpentTokenStore,
	kafkaWriter KafkaWriter,
	resetTTL time.Duration,
) *AuthService {
	if resetTTL <= 0 {
		resetTTL = DefaultResetTokenTTL
	}
	return &AuthService{
		reader:      reader,
		writer:      writer,
		tokens:      tokens,
		spent:       spent,
		kafkaWriter: kafkaWriter,
		resetTTL:    resetTTL,
	}
}

func validateRegistration(username, email, password string) error {
	if username == "" || utf8.RuneCountInString(username) > models.MaxUsernameLength {
		return fmt.Errorf("%w: username must be 1-%d characters", ErrInvalidInput, models.MaxUsernameLength)
	}
	if len(email) > models.MaxEmailLength {
		return fmt.Errorf("%w: email must be at most %d characters", ErrInvalidInput, models.MaxEmailLength)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if password == "" {
		return fmt.Errorf("%w: password must not be empty", ErrInvalidInput)
	}
	return nil
}

// Register creates a user with a bcrypt-hashed password.
// Surrounding whitespace is dropped from the username, as on profile edit.
func (svc *AuthService) Register(ctx context.Context, username, email, password string) (*models.UserDB, error) {
	username = strings.TrimSpace(username)
	if err := validateRegistration(username, email, password); err != nil {
		return nil, err
	}

	existing, err := svc.reader.GetByUsernameOrEmail(ctx, &username, &email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Infow("user already exists", "username", username, "email", email)
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user, err := svc.writer.Save(ctx, username, email, string(hashedPassword))
	if errors.Is(err, models.ErrDuplicate) {
		logger.Log.Infow("user already exists", "username", username, "email", email)
		return nil, ErrUserAlreadyExists
	}
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	publishEvent(ctx, svc.kafkaWriter, models.EventUserRegistered, user.ID, map[string]string{
		"username": user.Username,
	})

	return user, nil
}

// VerifyCredentials returns the user only if password matches its stored hash.
// Unknown users, users without a password and wrong passwords all give nil, nil.
func (svc *AuthService) VerifyCredentials(ctx context.Context, username, password string) (*models.UserDB, error) {
	user, err := svc.reader.GetByUsernameOrEmail(ctx, &username, nil)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Infow("user does not exist", "username", username)
		return nil, nil
	}
	if user.PasswordHash == nil {
		logger.Log.Infow("user has no password set", "username", username)
		return nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("invalid credentials", "username", username)
		return nil, nil
	}

	return user, nil
}

// Login authenticates a user and returns an access token.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := svc.VerifyCredentials(ctx, username, password)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	token, err := svc.tokens.Generate(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}

// IssuePasswordResetToken signs a reset token for user valid for ttl,
// or for the service default when ttl is not positive.
func (svc *AuthService) IssuePasswordResetToken(ctx context.Context, user *models.UserDB, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = svc.resetTTL
	}
	token, err := svc.tokens.GenerateResetToken(ctx, user.ID, ttl)
	if err != nil {
		logger.Log.Errorw("failed to generate reset token", "userID", user.ID, "err", err)
		return "", err
	}
	return token, nil
}

// VerifyPasswordResetToken returns the user a reset token was issued for,
// or nil if the token cannot be used for any reason.
func (svc *AuthService) VerifyPasswordResetToken(ctx context.Context, token string) *models.UserDB {
	user, _ := svc.checkResetToken(ctx, token)
	return user
}

// checkResetToken logs why a token was refused; callers only see a nil user.
func (svc *AuthService) checkResetToken(ctx context.Context, token string) (*models.UserDB, jwt.ResetToken) {
	res := svc.tokens.ParseResetToken(ctx, token)
	if res.Status != jwt.TokenValid {
		logger.Log.Warnw("reset token rejected", "status", res.Status.String(), "err", res.Err)
		return nil, res
	}

	spent, err := svc.spent.IsSpent(ctx, res.ID)
	if err != nil {
		logger.Log.Errorw("failed to check reset token", "tokenID", res.ID, "err", err)
		return nil, res
	}
	if spent {
		res.Status = jwt.TokenSpent
		logger.Log.Warnw("reset token rejected", "status", res.Status.String(), "tokenID", res.ID)
		return nil, res
	}

	user, err := svc.reader.GetByID(ctx, res.UserID)
	if err != nil {
		logger.Log.Errorw("failed to get reset token user", "userID", res.UserID, "err", err)
		return nil, res
	}
	if user == nil {
		res.Status = jwt.TokenUserMissing
		logger.Log.Warnw("reset token rejected", "status", res.Status.String(), "userID", res.UserID)
		return nil, res
	}

	return user, res
}

// RequestPasswordReset issues a reset token for the user with email and hands it
// to the event stream for delivery. Unknown emails are accepted silently.
func (svc *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := svc.reader.GetByUsernameOrEmail(ctx, nil, &email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		logger.Log.Infow("password reset requested for unknown email")
		return nil
	}

	token, err := svc.IssuePasswordResetToken(ctx, user, 0)
	if err != nil {
		return err
	}

	publishEvent(ctx, svc.kafkaWriter, models.EventPasswordResetRequested, user.ID, map[string]string{
		"username": user.Username,
		"email":    user.Email,
		"token":    token,
	})

	return nil
}

// ResetPassword sets a new password using a reset token. Each token works once.
func (svc *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: password must not be empty", ErrInvalidInput)
	}

	user, res := svc.checkResetToken(ctx, token)
	if user == nil {
		return ErrTokenInvalid
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	if err := svc.writer.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		logger.Log.Errorw("failed to update password", "userID", user.ID, "err", err)
		return err
	}

	// A second use of the token fails here and the request rolls the update back.
	ttl := time.Until(res.ExpiresAt)
	if ttl < time.Second {
		ttl = time.Second
	}
	fresh, err := svc.spent.MarkSpent(ctx, res.ID, ttl)
	if err != nil {
		logger.Log.Errorw("failed to mark reset token spent", "tokenID", res.ID, "err", err)
		return err
	}
	if !fresh {
		logger.Log.Warnw("reset token rejected", "status", jwt.TokenSpent.String(), "tokenID", res.ID)
		return ErrTokenInvalid
	}

	publishEvent(ctx, svc.kafkaWriter, models.EventPasswordReset, user.ID, nil)
	return nil
}
