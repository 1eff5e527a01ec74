package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/sbilibin2017/gw-microblog/internal/models"
)

const userColumns = `id, username, email, password_hash, about_me, last_seen, created_at`

// UserReadRepository handles user read operations
type UserReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

// GetByUsernameOrEmail returns the first user matching the username or the email.
// A nil argument is ignored. Returns nil, nil when nothing matches.
func (r *UserReadRepository) GetByUsernameOrEmail(ctx context.Context, username, email *string) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1::VARCHAR IS NOT NULL AND username = $1)
		   OR ($2::VARCHAR IS NOT NULL AND email = $2)
		ORDER BY id
		LIMIT 1
	`
	return r.get(ctx, query, username, email)
}

// GetByID returns the user with the given id, or nil, nil.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return r.get(ctx, query, id)
}

func (r *UserReadRepository) get(ctx context.Context, query string, args ...any) (*models.UserDB, error) {
	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, args...)

	logger.Log.Infow("query",
		"sql", logger.Query(query),
		"args", args,
		"result", user.ID,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserWriteRepository handles user write operations
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a new user. Returns models.ErrDuplicate if the username or email is taken.
func (r *UserWriteRepository) Save(ctx context.Context, username, email, passwordHash string) (*models.UserDB, error) {
	const query = `
		INSERT INTO users (username, email, password_hash, last_seen, created_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING ` + userColumns

	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, username, email, passwordHash)

	logger.Log.Infow("query",
		"sql", logger.Query(query),
		"args", []any{username, email},
		"result", user.ID,
		"error", err,
	)

	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// UpdatePassword replaces the password hash of a user.
func (r *UserWriteRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $2 WHERE id = $1`
	return r.exec(ctx, query, []any{userID, passwordHash}, []any{userID})
}

// UpdateProfile sets username and about-me. Returns models.ErrDuplicate if the username is taken.
func (r *UserWriteRepository) UpdateProfile(ctx context.Context, userID int64, username string, aboutMe *string) error {
	const query = `UPDATE users SET username = $2, about_me = $3 WHERE id = $1`
	args := []any{userID, username, aboutMe}
	return r.exec(ctx, query, args, args)
}

// TouchLastSeen sets last_seen to the current time.
func (r *UserWriteRepository) TouchLastSeen(ctx context.Context, userID int64) error {
	const query = `UPDATE users SET last_seen = NOW() WHERE id = $1`
	args := []any{userID}
	return r.exec(ctx, query, args, args)
}

// exec runs query with args and logs it with logArgs, which leave out secrets.
func (r *UserWriteRepository) exec(ctx context.Context, query string, args, logArgs []any) error {
	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("query",
		"sql", logger.Query(query),
		"args", logArgs,
		"result", rowsAffected,
		"error", err,
	)

	return mapError(err)
}
