package llm

import "github.com/omkarP-bit/Dreamers-AgriTech/internal/config"

// NewGroq talks to Groq's OpenAI-compatible endpoint.
func NewGroq(cfg *config.GroqConfig) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:     "https://api.groq.com/openai",
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		AuthHeader:  "Authorization",
		AuthPrefix:  "Bearer ",
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	})
}

// NewCustomOpenAI points at any other OpenAI-compatible server, e.g. a
// local gateway.
func NewCustomOpenAI(baseURL, apiKey, model string) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Model:      model,
		AuthHeader: "Authorization",
		AuthPrefix: "Bearer ",
	})
}
