package model

import (
	"time"

	"github.com/google/uuid"
)

// ServiceLinkedIn is the service name of messages from the LinkedIn export
const ServiceLinkedIn = "linkedin"

// Message represents a single message between two known people
type Message struct {
	ID                int64     `json:"id"`
	RID               uuid.UUID `json:"rid"`
	Service           string    `json:"service"`
	ConversationID    string    `json:"conversation_id,omitempty"`
	ConversationTitle string    `json:"conversation_title,omitempty"`
	Subject           string    `json:"subject,omitempty"`
	Folder            string    `json:"folder,omitempty"`
	FromSlug          string    `json:"from_slug"`
	ToSlugs           []string  `json:"to_slugs"`
	Body              string    `json:"body"`
	DateStr           string    `json:"date"`
	TimeStr           string    `json:"time"`
	Timestamp         int64     `json:"timestamp"`
	Metadata          Metadata  `json:"metadata,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Time returns the message timestamp as a time.Time in loc
func (m *Message) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(m.Timestamp, 0).In(loc)
}
