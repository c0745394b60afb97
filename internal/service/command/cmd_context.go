package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/farmctx"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/orchestrator"
)

type ContextCommand struct {
	sessions  *orchestrator.SessionStore
	formatter *ResponseFormatter
}

func NewContextCommand(sessions *orchestrator.SessionStore) *ContextCommand {
	return &ContextCommand{
		sessions:  sessions,
		formatter: NewResponseFormatter(),
	}
}

func (c *ContextCommand) Name() string {
	return "context"
}

func (c *ContextCommand) Description() string {
	return "Show what the advisors know about your farm"
}

func (c *ContextCommand) Execute(ctx context.Context, sessionID string, _ []string) (string, error) {
	orch, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}

	known := orch.Context()
	if len(known) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Farm Context"),
			"Nothing recorded yet. Mention your soil, location or previous crop and I will remember it.",
		), nil
	}

	sections := []string{c.formatter.Info("Farm Context")}
	for _, slot := range farmctx.Slots() {
		if v, ok := known[slot]; ok {
			sections = append(sections, c.formatter.Label(titleSlot(slot), v))
		}
	}
	return c.formatter.Combine(sections...), nil
}

// titleSlot turns "soil_type" into "Soil Type".
func titleSlot(slot string) string {
	words := strings.Split(slot, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
