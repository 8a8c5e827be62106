package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/strandworks/lumibot/pkg/log"
)

type TelegramConfig struct {
	Token string `env:"LUMI_TELEGRAM_TOKEN,required,notEmpty"`
	// AdminChatID is the single operator chat that receives relayed
	// consultation questions.
	AdminChatID int64 `env:"LUMI_ADMIN_CHAT_ID,required"`
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c := &TelegramConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Telegram config")
	}
	return c
}
