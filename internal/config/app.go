package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/omkarP-bit/Dreamers-AgriTech/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"AGRI_RUNTIME_PATH" envDefault:".agritech"`
	// Allow selecting the provider
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"groq"`

	// Transport Flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"ENABLE_CLI" envDefault:"true"`

	// Dialogue Management
	HistoryWindowSize  int `env:"HISTORY_WINDOW_SIZE" envDefault:"8"`
	ParticipantTimeout int `env:"PARTICIPANT_TIMEOUT_SECONDS" envDefault:"45"`
	SessionCacheSize   int `env:"SESSION_CACHE_SIZE" envDefault:"64"`

	// Defaults for new seasons
	DefaultPhase      string `env:"DEFAULT_CROP_PHASE" envDefault:"pre_sowing"`
	DefaultFarmerType string `env:"DEFAULT_FARMER_TYPE" envDefault:"traditional"`
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
	return filepath.Join(c.RuntimePath, "agritech.db")
}

func (c AppConfig) GetVocabularyPath() string {
	return filepath.Join(c.RuntimePath, "vocabulary.yaml")
}

func (c AppConfig) GetSelectorPath() string {
	return filepath.Join(c.RuntimePath, "selector.yaml")
}
