package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/strandworks/lumibot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"LUMI_RUNTIME_PATH" envDefault:".lumibot"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "contacts.db")
}

func (c AppConfig) GetTextsPath() string {
	return filepath.Join(c.RuntimePath, "texts.json")
}

func (c AppConfig) GetFilesPath() string {
	return filepath.Join(c.RuntimePath, "files.json")
}

func (c AppConfig) GetQuestionsPath() string {
	return filepath.Join(c.RuntimePath, "questions.json")
}

func (c AppConfig) GetAssetsPath() string {
	return filepath.Join(c.RuntimePath, "assets")
}
