package telegram

import (
	"fmt"

	"github.com/strandworks/lumibot/internal/content"
	"github.com/strandworks/lumibot/internal/core"
	tele "gopkg.in/telebot.v3"
)

// markup turns a declarative keyboard from the content package into inline
// markup. Callback buttons carry the selection label as raw payload.
func (b *Bot) markup(id string) *tele.ReplyMarkup {
	if id == "" {
		return nil
	}
	rows, ok := content.Keyboard(id)
	if !ok {
		return nil
	}

	keyboard := make([][]tele.InlineButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tele.InlineButton, 0, len(row))
		for _, btn := range row {
			if btn.URL != "" {
				buttons = append(buttons, tele.InlineButton{
					Text: b.catalog.Button(btn.Key),
					URL:  btn.URL,
				})
				continue
			}
			buttons = append(buttons, tele.InlineButton{
				Text: b.catalog.Button(btn.Key),
				Data: btn.Key,
			})
		}
		keyboard = append(keyboard, buttons)
	}
	return &tele.ReplyMarkup{InlineKeyboard: keyboard}
}

// answerMarkup builds one button per option, payload "test:<index>:<delta>".
// The embedded index is what lets the engine reject stale retries.
func (b *Bot) answerMarkup(index int, q core.Question) *tele.ReplyMarkup {
	keyboard := make([][]tele.InlineButton, 0, len(q.Options))
	for _, opt := range q.Options {
		keyboard = append(keyboard, []tele.InlineButton{{
			Text: opt.Label,
			Data: fmt.Sprintf("%s:%d:%d", content.KeyQuiz, index, opt.Score),
		}})
	}
	return &tele.ReplyMarkup{InlineKeyboard: keyboard}
}
