package core

import (
	"context"
	"time"
)

// Contact is the durable per-chat record. PhoneNumber is sticky: once known
// it survives every later upsert that does not supply a new one.
type Contact struct {
	ChatID         int64     `json:"chat_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name,omitempty"`
	Username       string    `json:"username,omitempty"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	IsBot          bool      `json:"is_bot"`
	LanguageCode   string    `json:"language_code,omitempty"`
	LastActivityAt time.Time `json:"last_activity_at"`
	LastCommand    string    `json:"last_command,omitempty"`
}

type ContactRepository interface {
	// Upsert inserts or merges a record keyed by chatID. command and phone
	// may be empty; an empty phone never clears a previously stored one.
	Upsert(ctx context.Context, chatID int64, profile Profile, command, phone string) error
	Get(ctx context.Context, chatID int64) (*Contact, error)
}
