package telegram

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/strandworks/lumibot/internal/content"
	"github.com/strandworks/lumibot/internal/core"
	"github.com/strandworks/lumibot/pkg/conv"
	"github.com/strandworks/lumibot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

// render executes one engine directive against the chat that produced it.
func (b *Bot) render(ctx context.Context, c tele.Context, d core.Directive) error {
	switch d := d.(type) {
	case core.ShowContent:
		return b.renderContent(ctx, c, d)
	case core.ShowQuestion:
		return b.renderQuestion(c, d)
	case core.ShowResult:
		return b.renderResult(c, d)
	case core.ForwardToOperator:
		return b.renderForward(ctx, c, d)
	case core.DeliverReply:
		_, err := b.bot.Send(tele.ChatID(d.ChatID), d.Text)
		if err != nil {
			log.FromCtx(ctx).Error().Err(err).Int64("chat_id", d.ChatID).Msg("failed to deliver operator reply")
		}
		return err
	case core.ShowFallback:
		return b.sendHTML(c, b.catalog.Text(content.KeyFallback), nil)
	case core.Ack:
		return nil
	default:
		log.FromCtx(ctx).Warn().Msgf("unhandled directive %T", d)
		return nil
	}
}

func (b *Bot) renderContent(ctx context.Context, c tele.Context, d core.ShowContent) error {
	if path, ok := b.catalog.File(d.Key); ok {
		if err := b.sendAsset(c, path); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Str("key", d.Key).Str("path", path).Msg("asset missing")
			if err := c.Send(b.catalog.Text(content.KeyFileMissing)); err != nil {
				return err
			}
		}
	}

	text := b.catalog.Format(d.Key, firstNameOf(c))
	return b.sendHTML(c, text, b.markup(d.Keyboard))
}

func (b *Bot) renderQuestion(c tele.Context, d core.ShowQuestion) error {
	if d.WithIntro {
		if intro := b.catalog.Text(content.KeyQuiz); intro != content.KeyQuiz {
			if err := b.sendHTML(c, intro, nil); err != nil {
				return err
			}
		}
	}

	text := fmt.Sprintf("**%d / %d**\n\n%s", d.Index+1, d.Total, d.Question.Text)
	return b.sendHTML(c, text, b.answerMarkup(d.Index, d.Question))
}

func (b *Bot) renderResult(c tele.Context, d core.ShowResult) error {
	key := content.KeyResultLow
	switch d.Band {
	case core.BandMedium:
		key = content.KeyResultMedium
	case core.BandHigh:
		key = content.KeyResultHigh
	}
	return b.sendHTML(c, b.catalog.Text(key), b.markup(content.KbClient))
}

// renderForward sends the marker-embedded text to the operator chat and
// acknowledges the asking user. The forward is retried a few times; a final
// failure is logged and the event dropped, re-delivery is the transport's
// problem per the at-least-once inbound contract.
func (b *Bot) renderForward(ctx context.Context, c tele.Context, d core.ForwardToOperator) error {
	err := b.retrier.Do(ctx, func() error {
		_, err := b.bot.Send(tele.ChatID(b.adminChatID), d.OperatorText)
		return err
	})
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to forward question to operator")
		return err
	}

	return b.sendHTML(c, b.catalog.Format(d.AckKey, firstNameOf(c)), nil)
}

func (b *Bot) sendHTML(c tele.Context, md string, markup *tele.ReplyMarkup) error {
	html := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(md)))
	if html == "" {
		return nil
	}
	if markup != nil {
		return c.Send(html, tele.ModeHTML, markup)
	}
	return c.Send(html, tele.ModeHTML)
}

func (b *Bot) sendAsset(c tele.Context, path string) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(b.assetsPath, path)
	}
	if _, err := os.Stat(path); err != nil {
		return err
	}

	file := tele.FromDisk(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png":
		return c.Send(&tele.Photo{File: file})
	default:
		return c.Send(&tele.Document{File: file, FileName: filepath.Base(path)})
	}
}

func firstNameOf(c tele.Context) string {
	if u := c.Sender(); u != nil {
		return u.FirstName
	}
	return ""
}
