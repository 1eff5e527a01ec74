package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-microblog/internal/logger"
	"github.com/sbilibin2017/gw-microblog/internal/metrics"
	"github.com/sbilibin2017/gw-microblog/internal/models"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=events.go -destination=events_mock.go -package=services

// Validation errors. Handlers report their message to the client.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrEmptyPost      = fmt.Errorf("%w: post must not be empty", ErrInvalidInput)
	ErrPostTooLong    = fmt.Errorf("%w: post must be at most %d characters", ErrInvalidInput, models.MaxPostLength)
	ErrAboutMeTooLong = fmt.Errorf("%w: about me must be at most %d characters", ErrInvalidInput, models.MaxAboutMeLength)
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// publishEvent publishes a domain event keyed by user, so one user's events stay ordered.
// Publishing is best effort: failures are logged and counted, never returned.
func publishEvent(ctx context.Context, w KafkaWriter, eventType string, userID int64, payload map[string]string) {
	evt := models.Event{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		Type:      eventType,
		UserID:    userID,
		Payload:   payload,
	}

	if w == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", evt.EventID, "type", eventType)
		metrics.DomainEvents.WithLabelValues(eventType, "skipped").Inc()
		return
	}

	data, err := json.Marshal(evt)
	if err != nil {
		logger.Log.Errorw("Failed to marshal event for Kafka", "event_id", evt.EventID, "type", eventType, "error", err)
		metrics.DomainEvents.WithLabelValues(eventType, "failed").Inc()
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(userID, 10)),
		Value: data,
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish event to Kafka", "event_id", evt.EventID, "type", eventType, "error", err)
		metrics.DomainEvents.WithLabelValues(eventType, "failed").Inc()
		return
	}

	logger.Log.Infow("Event published to Kafka", "event_id", evt.EventID, "type", eventType, "user_id", userID)
	metrics.DomainEvents.WithLabelValues(eventType, "published").Inc()
}
