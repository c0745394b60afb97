package command

import (
	"context"
	"fmt"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/orchestrator"
)

type AgentsCommand struct {
	sessions  *orchestrator.SessionStore
	formatter *ResponseFormatter
}

func NewAgentsCommand(sessions *orchestrator.SessionStore) *AgentsCommand {
	return &AgentsCommand{
		sessions:  sessions,
		formatter: NewResponseFormatter(),
	}
}

func (c *AgentsCommand) Name() string {
	return "agents"
}

func (c *AgentsCommand) Description() string {
	return "List the advisory team and who leads the current phase"
}

func (c *AgentsCommand) Execute(ctx context.Context, sessionID string, _ []string) (string, error) {
	orch, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}

	var items []string
	for _, a := range orch.Agents() {
		line := fmt.Sprintf("**%s**: %s", a.Name, a.Role)
		if a.Active {
			line += " (leading this phase)"
		}
		items = append(items, line)
	}

	return c.formatter.Combine(
		c.formatter.Info("Advisory Team"),
		c.formatter.List(items),
	), nil
}
