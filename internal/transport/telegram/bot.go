package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/strandworks/lumibot/internal/config"
	"github.com/strandworks/lumibot/internal/content"
	"github.com/strandworks/lumibot/internal/core"
	"github.com/strandworks/lumibot/internal/engine"
	"github.com/strandworks/lumibot/pkg/log"
	"github.com/strandworks/lumibot/pkg/retry"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

// commandPages maps slash commands onto menu selection labels so commands
// and inline buttons share one dispatch path through the engine.
var commandPages = map[string]string{
	"/about":     content.KeyAbout,
	"/guid":      content.KeyGuide,
	"/faq":       content.KeyFAQ,
	"/signup":    content.KeySigning,
	"/contacts":  content.KeyContacts,
	"/questions": content.KeyConsulting,
}

type Bot struct {
	bot         *tele.Bot
	cfg         *config.TelegramConfig
	engine      *engine.Engine
	catalog     *content.Catalog
	assetsPath  string
	retrier     *retry.Retrier
	adminChatID int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	eng *engine.Engine,
	catalog *content.Catalog,
	assetsPath string,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:         b,
		cfg:         cfg,
		engine:      eng,
		catalog:     catalog,
		assetsPath:  assetsPath,
		retrier:     retry.NewDefaultRetrier(),
		adminChatID: cfg.AdminChatID,
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle("/reload", bot.handleReload)
	for command, label := range commandPages {
		label := label
		b.Handle(command, func(c tele.Context) error {
			return bot.handleMenuSelect(c, label)
		})
	}

	b.Handle(tele.OnCallback, bot.handleCallback)
	b.Handle(tele.OnText, bot.handleText)
	b.Handle(tele.OnContact, bot.handleContact)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) ctx(c tele.Context) context.Context {
	return c.Get(baseContextKey).(context.Context)
}

func (b *Bot) handleStart(c tele.Context) error {
	ctx := b.ctx(c)
	d, err := b.engine.OnStart(ctx, c.Chat().ID, profileOf(c.Sender()))
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Int64("chat_id", c.Chat().ID).Msg("start event failed")
		return nil
	}
	return b.render(ctx, c, d)
}

func (b *Bot) handleMenuSelect(c tele.Context, label string) error {
	ctx := b.ctx(c)
	d, err := b.engine.OnMenuSelect(ctx, c.Chat().ID, profileOf(c.Sender()), label)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Int64("chat_id", c.Chat().ID).Str("label", label).Msg("menu event failed")
		return nil
	}
	return b.render(ctx, c, d)
}

// handleCallback dispatches inline button presses: the quiz start button,
// scored answer payloads of the form "test:<index>:<delta>", and every menu
// selection. Malformed payloads are acknowledged and dropped.
func (b *Bot) handleCallback(c tele.Context) error {
	ctx := b.ctx(c)
	data := strings.TrimPrefix(c.Callback().Data, "\f")

	defer func() {
		// Telegram keeps the button spinner until the callback is answered.
		_ = c.Respond()
	}()

	if data == content.KeyQuiz {
		d, err := b.engine.OnQuizStart(ctx, c.Chat().ID, profileOf(c.Sender()))
		if err != nil {
			log.FromCtx(ctx).Error().Err(err).Int64("chat_id", c.Chat().ID).Msg("quiz start failed")
			return nil
		}
		return b.render(ctx, c, d)
	}

	if payload, ok := strings.CutPrefix(data, content.KeyQuiz+":"); ok {
		index, delta, err := parseAnswer(payload)
		if err != nil {
			log.FromCtx(ctx).Debug().Str("data", data).Msg("malformed quiz payload dropped")
			return nil
		}
		d, err := b.engine.OnQuizAnswer(ctx, c.Chat().ID, index, delta)
		if err != nil {
			return nil
		}
		return b.render(ctx, c, d)
	}

	return b.handleMenuSelect(c, data)
}

func (b *Bot) handleText(c tele.Context) error {
	ctx := b.ctx(c)

	// Threaded replies in the operator chat route back to the original
	// sender; anything else from anyone is ordinary free text.
	if c.Chat().ID == b.adminChatID && c.Message().ReplyTo != nil {
		d, err := b.engine.OnOperatorReply(ctx, c.Message().ReplyTo.Text, c.Text())
		if err != nil {
			return nil
		}
		return b.render(ctx, c, d)
	}

	d, err := b.engine.OnFreeText(ctx, c.Chat().ID, profileOf(c.Sender()), c.Text())
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Int64("chat_id", c.Chat().ID).Msg("free text event failed")
		return nil
	}
	return b.render(ctx, c, d)
}

func (b *Bot) handleContact(c tele.Context) error {
	ctx := b.ctx(c)
	contact := c.Message().Contact
	if contact == nil {
		return nil
	}
	d, err := b.engine.OnContact(ctx, c.Chat().ID, profileOf(c.Sender()), contact.PhoneNumber)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Int64("chat_id", c.Chat().ID).Msg("contact event failed")
		return nil
	}
	return b.render(ctx, c, d)
}

func (b *Bot) handleReload(c tele.Context) error {
	ctx := b.ctx(c)
	if c.Chat().ID != b.adminChatID {
		return c.Send(b.catalog.Text(content.KeyNoAccess))
	}
	if err := b.catalog.Load(ctx); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("content reload failed")
		return c.Send(fmt.Sprintf("reload failed: %v", err))
	}
	return c.Send(b.catalog.Text(content.KeyReloaded))
}

func parseAnswer(payload string) (index, delta int, err error) {
	parts := strings.Split(payload, ":")
	if len(parts) != 2 {
		return 0, 0, core.ErrMalformedPayload
	}
	index, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, core.ErrMalformedPayload
	}
	delta, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, core.ErrMalformedPayload
	}
	return index, delta, nil
}

func profileOf(u *tele.User) core.Profile {
	if u == nil {
		return core.Profile{}
	}
	return core.Profile{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     u.Username,
		IsBot:        u.IsBot,
		LanguageCode: u.LanguageCode,
	}
}
