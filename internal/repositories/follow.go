package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-microblog/internal/logger"
)

// FollowWriteRepository creates and removes follow edges.
type FollowWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewFollowWriteRepository(db *sqlx.DB, txGetter TxGetter) *FollowWriteRepository {
	return &FollowWriteRepository{db: db, txGetter: txGetter}
}

// Save creates the edge follower -> followed. Reports false if it already existed.
func (r *FollowWriteRepository) Save(ctx context.Context, followerID, followedID int64) (bool, error) {
	const query = `
		INSERT INTO followers (follower_id, followed_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followed_id) DO NOTHING
	`
	return r.exec(ctx, query, followerID, followedID)
}

// Delete removes the edge follower -> followed. Reports false if there was none.
func (r *FollowWriteRepository) Delete(ctx context.Context, followerID, followedID int64) (bool, error) {
	const query = `
		DELETE FROM followers
		WHERE follower_id = $1 AND followed_id = $2
	`
	return r.exec(ctx, query, followerID, followedID)
}

func (r *FollowWriteRepository) exec(ctx context.Context, query string, followerID, followedID int64) (bool, error) {
	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, followerID, followedID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("query",
		"sql", logger.Query(query),
		"args", []any{followerID, followedID},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

// FollowReadRepository answers questions about the follow graph.
type FollowReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewFollowReadRepository(db *sqlx.DB, txGetter TxGetter) *FollowReadRepository {
	return &FollowReadRepository{db: db, txGetter: txGetter}
}

// IsFollowing reports whether the edge follower -> followed exists.
func (r *FollowReadRepository) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM followers
			WHERE follower_id = $1 AND followed_id = $2
		)
	`
	var exists bool
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &exists, query, followerID, followedID)

	logger.Log.Infow("query",
		"sql", logger.Query(query),
		"args", []any{followerID, followedID},
		"result", exists,
		"error", err,
	)

	return exists, err
}

// CountFollowers returns how many users follow userID.
func (r *FollowReadRepository) CountFollowers(ctx context.Context, userID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM followers WHERE followed_id = $1`
	return r.count(ctx, query, userID)
}

// CountFollowing returns how many users userID follows.
func (r *FollowReadRepository) CountFollowing(ctx context.Context, userID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM followers WHERE follower_id = $1`
	return r.count(ctx, query, userID)
}

func (r *FollowReadRepository) count(ctx context.Context, query string, userID int64) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &n, query, userID)

	logger.Log.Infow("query",
		"sql", logger.Query(query),
		"args", []any{userID},
		"result", n,
		"error", err,
	)

	return n, err
}
