package notify

//go:generate mockgen -destination=mocks/mock_publisher.go -package=mocks gogo-delivery/notify Publisher

import (
	"context"
	"time"

	"gogo-delivery/models"

	"github.com/google/uuid"
)

// Event is the message emitted for every stored notification.
type Event struct {
	ID             string    `json:"event_id"`
	NotificationID uint      `json:"notification_id"`
	UserID         uint      `json:"user_id"`
	Title          string    `json:"title"`
	Description    *string   `json:"description,omitempty"`
	SentTime       time.Time `json:"sent_time"`
}

func NewEvent(n models.Notification) Event {
	return Event{
		ID:             uuid.NewString(),
		NotificationID: n.ID,
		UserID:         n.UserID,
		Title:          n.Title,
		Description:    n.Description,
		SentTime:       n.SentTime,
	}
}

// Publisher delivers notification events once their rows are committed.
type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...Event) error { return nil }
func (NopPublisher) Close() error                           { return nil }
