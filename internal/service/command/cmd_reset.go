package command

import (
	"context"
	"fmt"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/orchestrator"
)

type ResetCommand struct {
	sessions  *orchestrator.SessionStore
	formatter *ResponseFormatter
}

func NewResetCommand(sessions *orchestrator.SessionStore) *ResetCommand {
	return &ResetCommand{
		sessions:  sessions,
		formatter: NewResponseFormatter(),
	}
}

func (c *ResetCommand) Name() string {
	return "reset"
}

func (c *ResetCommand) Description() string {
	return "Clear the conversation and start over"
}

func (c *ResetCommand) Execute(ctx context.Context, sessionID string, _ []string) (string, error) {
	orch, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}

	if err := orch.Reset(ctx); err != nil {
		return "", fmt.Errorf("failed to reset conversation: %w", err)
	}

	return c.formatter.Success("Conversation cleared. Tell me about your farm to start fresh."), nil
}
