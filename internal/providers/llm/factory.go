package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/config"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
	"github.com/omkarP-bit/Dreamers-AgriTech/pkg/log"
)

// NewProvider creates the appropriate ModelClient based on configuration.
func NewProvider(ctx context.Context, cfg *config.AppConfig) (core.ModelClient, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.LLMProvider).
		Msg("starting llm provider")

	switch cfg.LLMProvider {
	case "groq":
		return NewGroq(config.NewGroqConfig(ctx)), nil
	case "custom":
		return NewCustomOpenAI(
			os.Getenv("CUSTOM_OPENAI_BASE_URL"),
			os.Getenv("CUSTOM_OPENAI_API_KEY"),
			os.Getenv("CUSTOM_OPENAI_MODEL"),
		), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}
