package engine

import (
	"context"
	"fmt"

	"github.com/strandworks/lumibot/internal/content"
	"github.com/strandworks/lumibot/internal/core"
	"github.com/strandworks/lumibot/pkg/log"
	"github.com/strandworks/lumibot/pkg/syncx"
)

// Engine is the conversational session and relay core. Every inbound event
// lands here as a structured call; the engine updates the contact store,
// dispatches to the quiz or relay state, and returns a render directive for
// the transport to execute. All mutations for one chat are serialized
// through a keyed mutex; distinct chats proceed fully in parallel.
type Engine struct {
	contacts core.ContactRepository
	quiz     *QuizManager
	relay    *RelayTracker
	router   *ReplyRouter
	locks    *syncx.KeyedMutex
}

func New(contacts core.ContactRepository, quiz *QuizManager, relay *RelayTracker) *Engine {
	return &Engine{
		contacts: contacts,
		quiz:     quiz,
		relay:    relay,
		router:   NewReplyRouter(),
		locks:    syncx.NewKeyedMutex(),
	}
}

// OnStart handles the /start command: audits the contact, resets any relay
// mode, and renders the welcome page.
func (e *Engine) OnStart(ctx context.Context, chatID int64, profile core.Profile) (core.Directive, error) {
	e.locks.Lock(chatID)
	defer e.locks.Unlock(chatID)

	if err := e.contacts.Upsert(ctx, chatID, profile, content.KeyStart, ""); err != nil {
		return nil, fmt.Errorf("start upsert: %w", err)
	}
	e.relay.Leave(chatID)
	return core.ShowContent{Key: content.KeyStart, Keyboard: content.KbStart}, nil
}

// OnMenuSelect handles a menu button press or content command. Selecting
// the consultation item enters relay mode; every other selection leaves it.
// Unknown labels are acknowledged and discarded.
func (e *Engine) OnMenuSelect(ctx context.Context, chatID int64, profile core.Profile, label string) (core.Directive, error) {
	e.locks.Lock(chatID)
	defer e.locks.Unlock(chatID)

	keyboard, known := content.Page(label)
	if !known {
		log.FromCtx(ctx).Debug().Int64("chat_id", chatID).Str("label", label).Msg("unknown menu selection dropped")
		return core.Ack{Reason: "unknown selection"}, nil
	}

	if err := e.contacts.Upsert(ctx, chatID, profile, label, ""); err != nil {
		return nil, fmt.Errorf("menu upsert: %w", err)
	}

	if label == content.KeyConsulting {
		e.relay.Enter(chatID)
	} else {
		e.relay.Leave(chatID)
	}
	return core.ShowContent{Key: label, Keyboard: keyboard}, nil
}

// OnQuizStart opens a fresh quiz session, discarding any stale progress.
func (e *Engine) OnQuizStart(ctx context.Context, chatID int64, profile core.Profile) (core.Directive, error) {
	e.locks.Lock(chatID)
	defer e.locks.Unlock(chatID)

	if err := e.contacts.Upsert(ctx, chatID, profile, content.KeyQuiz, ""); err != nil {
		return nil, fmt.Errorf("quiz upsert: %w", err)
	}
	e.relay.Leave(chatID)
	return e.quiz.Start(chatID), nil
}

// OnQuizAnswer applies one scored answer callback. Duplicates and
// out-of-order retries are no-ops.
func (e *Engine) OnQuizAnswer(ctx context.Context, chatID int64, index, delta int) (core.Directive, error) {
	e.locks.Lock(chatID)
	defer e.locks.Unlock(chatID)

	d := e.quiz.Answer(chatID, index, delta)
	if ack, ok := d.(core.Ack); ok {
		log.FromCtx(ctx).Debug().Int64("chat_id", chatID).Int("index", index).Str("reason", ack.Reason).Msg("quiz answer ignored")
	}
	return d, nil
}

// OnFreeText audits the contact and either forwards the text to the
// operator (relay mode) or falls back to the generic answer. A chat never
// receives both for the same message.
func (e *Engine) OnFreeText(ctx context.Context, chatID int64, profile core.Profile, text string) (core.Directive, error) {
	e.locks.Lock(chatID)
	defer e.locks.Unlock(chatID)

	if err := e.contacts.Upsert(ctx, chatID, profile, "", ""); err != nil {
		return nil, fmt.Errorf("free text upsert: %w", err)
	}

	if e.relay.Active(chatID) {
		return core.ForwardToOperator{
			OperatorText: e.router.Compose(chatID, profile, text),
			AckKey:       content.KeyConsultAck,
		}, nil
	}
	return core.ShowFallback{}, nil
}

// OnContact stores a shared phone number. The number is sticky from here on.
func (e *Engine) OnContact(ctx context.Context, chatID int64, profile core.Profile, phone string) (core.Directive, error) {
	e.locks.Lock(chatID)
	defer e.locks.Unlock(chatID)

	if err := e.contacts.Upsert(ctx, chatID, profile, "", phone); err != nil {
		return nil, fmt.Errorf("contact upsert: %w", err)
	}
	return core.ShowContent{Key: content.KeyContactAck}, nil
}

// OnOperatorReply routes the operator's threaded reply back to the original
// sender. An unroutable reply is dropped, not retried.
func (e *Engine) OnOperatorReply(ctx context.Context, replySource, replyText string) (core.Directive, error) {
	chatID, err := e.router.Route(replySource)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("operator reply dropped")
		return core.Ack{Reason: "destination not found"}, nil
	}
	return core.DeliverReply{ChatID: chatID, Text: replyText}, nil
}
