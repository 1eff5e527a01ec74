package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/sbilibin2017/gw-microblog/internal/models"
)

// PostWriteRepository stores new posts.
type PostWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewPostWriteRepository(db *sqlx.DB, txGetter TxGetter) *PostWriteRepository {
	return &PostWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a post stamped with the current time.
func (r *PostWriteRepository) Save(ctx context.Context, userID int64, body string, language *string) (*models.PostDB, error) {
	const query = `
		INSERT INTO posts (body, created_at, user_id, language)
		VALUES ($1, NOW(), $2, $3)
		RETURNING id, body, created_at, user_id, language
	`

	var post models.PostDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &post, query, body, userID, language)

	logger.Log.Infow("query",
		"sql", logger.Query(query),
		"args", []any{body, userID, language},
		"result", post.ID,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// PostReadRepository reads posts joined with their authors, newest first.
// Posts with equal timestamps are ordered by id, highest first.
type PostReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewPostReadRepository(db *sqlx.DB, txGetter TxGetter) *PostReadRepository {
	return &PostReadRepository{db: db, txGetter: txGetter}
}

// GetFeed returns posts written by userID or by anyone userID follows.
func (r *PostReadRepository) GetFeed(ctx context.Context, userID int64, limit, offset int) ([]models.FeedPost, error) {
	const query = `
		SELECT p.id, p.body, p.created_at, p.user_id, p.language,
		       u.username AS author_username, u.email AS author_email
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id IN (
			SELECT id FROM posts WHERE user_id = $1
			UNION
			SELECT fp.id FROM posts fp
			JOIN followers f ON f.followed_id = fp.user_id
			WHERE f.follower_id = $1
		)
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`
	return r.selectPosts(ctx, query, userID, limit, offset)
}

// GetAll returns every post.
func (r *PostReadRepository) GetAll(ctx context.Context, limit, offset int) ([]models.FeedPost, error) {
	const query = `
		SELECT p.id, p.body, p.created_at, p.user_id, p.language,
		       u.username AS author_username, u.email AS author_email
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $1 OFFSET $2
	`
	return r.selectPosts(ctx, query, limit, offset)
}

// GetByUserID returns the posts written by userID.
func (r *PostReadRepository) GetByUserID(ctx context.Context, userID int64, limit, offset int) ([]models.FeedPost, error) {
	const query = `
		SELECT p.id, p.body, p.created_at, p.user_id, p.language,
		       u.username AS author_username, u.email AS author_email
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`
	return r.selectPosts(ctx, query, userID, limit, offset)
}

func (r *PostReadRepository) selectPosts(ctx context.Context, query string, args ...any) ([]models.FeedPost, error) {
	posts := []models.FeedPost{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &posts, query, args...)

	logger.Log.Infow("query",
		"sql", logger.Query(query),
		"args", args,
		"result", len(posts),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return posts, nil
}
