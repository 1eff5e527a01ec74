package services

import (
	"context"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/sbilibin2017/gw-microblog/internal/models"
)

//go:generate mockgen -source=posts.go -destination=posts_mock.go -package=services

// DefaultPostsPerPage is the page size used when none is configured.
const DefaultPostsPerPage = 20

// PostWriter stores new posts.
type PostWriter interface {
	Save(ctx context.Context, userID int64, body string, language *string) (*models.PostDB, error)
}

// PostReader lists posts newest first.
type PostReader interface {
	GetFeed(ctx context.Context, userID int64, limit, offset int) ([]models.FeedPost, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.FeedPost, error)
	GetByUserID(ctx context.Context, userID int64, limit, offset int) ([]models.FeedPost, error)
}

// PostService creates posts and composes paginated timelines.
type PostService struct {
	writer      PostWriter
	reader      PostReader
	kafkaWriter KafkaWriter
	perPage     int
}

// NewPostService creates a new PostService instance.
func NewPostService(writer PostWriter, reader PostReader, kafkaWriter KafkaWriter, perPage int) *PostService {
	if perPage <= 0 {
		perPage = DefaultPostsPerPage
	}
	return &PostService{
		writer:      writer,
		reader:      reader,
		kafkaWriter: kafkaWriter,
		perPage:     perPage,
	}
}

// CreatePost stores a post written by userID. The body must hold 1 to 140 characters
// once surrounding whitespace is removed; it is never truncated.
func (svc *PostService) CreatePost(ctx context.Context, userID int64, body string, language *string) (*models.PostDB, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyPost
	}
	if utf8.RuneCountInString(body) > models.MaxPostLength {
		return nil, ErrPostTooLong
	}
	if language != nil && *language == "" {
		language = nil
	}

	post, err := svc.writer.Save(ctx, userID, body, language)
	if err != nil {
		logger.Log.Errorw("failed to save post", "userID", userID, "err", err)
		return nil, err
	}

	publishEvent(ctx, svc.kafkaWriter, models.EventPostCreated, userID, map[string]string{
		"post_id": strconv.FormatInt(post.ID, 10),
	})

	return post, nil
}

// FeedFor returns a page of posts written by userID or by anyone userID follows.
func (svc *PostService) FeedFor(ctx context.Context, userID int64, page int) (*models.PostPage, error) {
	return svc.paginate(page, func(limit, offset int) ([]models.FeedPost, error) {
		return svc.reader.GetFeed(ctx, userID, limit, offset)
	})
}

// Explore returns a page of every post.
func (svc *PostService) Explore(ctx context.Context, page int) (*models.PostPage, error) {
	return svc.paginate(page, func(limit, offset int) ([]models.FeedPost, error) {
		return svc.reader.GetAll(ctx, limit, offset)
	})
}

// UserPosts returns a page of the posts written by userID.
func (svc *PostService) UserPosts(ctx context.Context, userID int64, page int) (*models.PostPage, error) {
	return svc.paginate(page, func(limit, offset int) ([]models.FeedPost, error) {
		return svc.reader.GetByUserID(ctx, userID, limit, offset)
	})
}

// paginate fetches one row past the page to learn whether a next page exists.
func (svc *PostService) paginate(page int, fetch func(limit, offset int) ([]models.FeedPost, error)) (*models.PostPage, error) {
	if page < 1 {
		page = 1
	}
	// No offset past math.MaxInt can hold rows; answer without querying.
	if page-1 > (math.MaxInt-1)/svc.perPage {
		return &models.PostPage{Posts: []models.FeedPost{}, Page: page, HasPrev: true}, nil
	}

	posts, err := fetch(svc.perPage+1, (page-1)*svc.perPage)
	if err != nil {
		logger.Log.Errorw("failed to list posts", "page", page, "err", err)
		return nil, err
	}

	hasNext := len(posts) > svc.perPage
	if hasNext {
		posts = posts[:svc.perPage]
	}

	return &models.PostPage{
		Posts:   posts,
		Page:    page,
		HasNext: hasNext,
		HasPrev: page > 1,
	}, nil
}
