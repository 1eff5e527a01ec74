package models

import (
	"errors"
	"time"
)

// Column limits of the users table.
const (
	MaxUsernameLength = 64
	MaxEmailLength    = 120
	MaxAboutMeLength  = 140
)

// ErrDuplicate is returned by repositories when a unique constraint rejects a write.
var ErrDuplicate = errors.New("duplicate record")

// UserDB represents a user record in the database
type UserDB struct {
	ID           int64     `json:"id" db:"id"`                       // Primary key
	Username     string    `json:"username" db:"username"`           // Unique username
	Email        string    `json:"email" db:"email"`                 // Unique email
	PasswordHash *string   `json:"-" db:"password_hash"`             // Hashed password, nil until set
	AboutMe      *string   `json:"about_me,omitempty" db:"about_me"` // Short free-text bio
	LastSeen     time.Time `json:"last_seen" db:"last_seen"`         // Last authenticated activity
	CreatedAt    time.Time `json:"created_at" db:"created_at"`       // Creation timestamp
}

// Profile is a user as seen by another (or the same) user.
type Profile struct {
	User           *UserDB
	Avatar         string
	FollowerCount  int
	FollowingCount int
	IsFollowing    bool
}
