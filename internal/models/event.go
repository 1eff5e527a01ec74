package models

// Event types published to the event stream.
const (
	EventUserRegistered         = "user_registered"
	EventPostCreated            = "post_created"
	EventUserFollowed           = "user_followed"
	EventUserUnfollowed         = "user_unfollowed"
	EventPasswordResetRequested = "password_reset_requested"
	EventPasswordReset          = "password_reset"
)

// Event represents a domain event, e.g. a new post or a password reset request.
type Event struct {
	EventID   string            `json:"event_id"`          // EventID is a unique identifier for the event.
	Timestamp int64             `json:"timestamp"`         // Timestamp is the Unix timestamp (in seconds) when the event occurred.
	Type      string            `json:"type"`              // Type is one of the Event* constants.
	UserID    int64             `json:"user_id"`           // UserID is the user who caused the event.
	Payload   map[string]string `json:"payload,omitempty"` // Payload carries event-specific fields.
}
