package models

import "time"

// MaxPostLength is the longest post body accepted, in characters.
const MaxPostLength = 140

// PostDB represents a post record in the database
type PostDB struct {
	ID        int64     `json:"id" db:"id"`                       // Primary key
	Body      string    `json:"body" db:"body"`                   // Post text
	Timestamp time.Time `json:"timestamp" db:"created_at"`        // Creation time, immutable
	UserID    int64     `json:"user_id" db:"user_id"`             // Author
	Language  *string   `json:"language,omitempty" db:"language"` // ISO short code, if known
}

// FeedPost is a post joined with its author.
type FeedPost struct {
	PostDB
	AuthorUsername string `json:"author_username" db:"author_username"`
	AuthorEmail    string `json:"-" db:"author_email"`
}

// PostPage is one page of posts, newest first.
type PostPage struct {
	Posts   []FeedPost
	Page    int
	HasNext bool
	HasPrev bool
}
