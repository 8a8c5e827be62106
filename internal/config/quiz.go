package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/strandworks/lumibot/pkg/log"
)

// QuizConfig holds the score banding thresholds: final score <= LowMax is
// "low", <= MediumMax is "medium", everything above is "high".
type QuizConfig struct {
	LowMax    int `env:"LUMI_QUIZ_LOW_MAX" envDefault:"3"`
	MediumMax int `env:"LUMI_QUIZ_MEDIUM_MAX" envDefault:"7"`
}

func NewQuizConfig(ctx context.Context) *QuizConfig {
	c := &QuizConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Quiz config")
	}
	return c
}
