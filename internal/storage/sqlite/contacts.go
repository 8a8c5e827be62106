package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/strandworks/lumibot/internal/core"
	"github.com/strandworks/lumibot/pkg/log"
)

type ContactsRepo struct {
	db *sql.DB
}

func NewContactsRepo(db *sql.DB) *ContactsRepo {
	return &ContactsRepo{db: db}
}

// Upsert merges a contact record inside one transaction. The read-then-write
// keeps phone_number sticky: an update without a phone retains the stored
// value. Callers serialize per chat_id; the transaction guards against a
// half-written row on failure.
func (r *ContactsRepo) Upsert(ctx context.Context, chatID int64, profile core.Profile, command, phone string) error {
	now := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin upsert: %w", err)
	}
	defer tx.Rollback()

	var existingPhone string
	err = tx.QueryRowContext(ctx,
		`SELECT phone_number FROM contacts WHERE chat_id = ?`, chatID,
	).Scan(&existingPhone)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, `
			INSERT INTO contacts (
				chat_id, first_name, last_name, username,
				phone_number, is_bot, language_code,
				last_activity_at, last_command
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			chatID, profile.FirstName, profile.LastName, profile.Username,
			phone, profile.IsBot, profile.LanguageCode,
			now, command,
		)
		if err != nil {
			return fmt.Errorf("failed to insert contact: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to read contact: %w", err)
	default:
		if phone == "" {
			phone = existingPhone
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE contacts SET
				first_name = ?, last_name = ?, username = ?,
				phone_number = ?, is_bot = ?, language_code = ?,
				last_activity_at = ?, last_command = ?
			WHERE chat_id = ?`,
			profile.FirstName, profile.LastName, profile.Username,
			phone, profile.IsBot, profile.LanguageCode,
			now, command, chatID,
		)
		if err != nil {
			return fmt.Errorf("failed to update contact: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit upsert: %w", err)
	}

	log.FromCtx(ctx).Debug().Int64("chat_id", chatID).Str("command", command).Msg("contact upserted")
	return nil
}

func (r *ContactsRepo) Get(ctx context.Context, chatID int64) (*core.Contact, error) {
	var c core.Contact
	err := r.db.QueryRowContext(ctx, `
		SELECT chat_id, first_name, last_name, username,
		       phone_number, is_bot, language_code,
		       last_activity_at, last_command
		FROM contacts WHERE chat_id = ?`, chatID,
	).Scan(
		&c.ChatID, &c.FirstName, &c.LastName, &c.Username,
		&c.PhoneNumber, &c.IsBot, &c.LanguageCode,
		&c.LastActivityAt, &c.LastCommand,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read contact: %w", err)
	}
	return &c, nil
}
