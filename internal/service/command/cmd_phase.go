package command

import (
	"context"
	"fmt"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/orchestrator"
)

type PhaseCommand struct {
	sessions  *orchestrator.SessionStore
	formatter *ResponseFormatter
}

func NewPhaseCommand(sessions *orchestrator.SessionStore) *PhaseCommand {
	return &PhaseCommand{
		sessions:  sessions,
		formatter: NewResponseFormatter(),
	}
}

func (c *PhaseCommand) Name() string {
	return "phase"
}

func (c *PhaseCommand) Description() string {
	return "Show or change the current crop phase"
}

func (c *PhaseCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	orch, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}

	if len(args) == 0 {
		var phases []string
		for _, p := range core.Phases() {
			phases = append(phases, string(p))
		}
		return c.formatter.Combine(
			c.formatter.Info("Crop Phase"),
			c.formatter.Label("Current", string(orch.Phase())),
			c.formatter.Usage("/phase [pre_sowing|growth|harvest]"),
			c.formatter.List(phases),
		), nil
	}

	if err := orch.UpdatePhase(ctx, args[0]); err != nil {
		return "", fmt.Errorf("failed to update phase: %w", err)
	}

	return c.formatter.Success(fmt.Sprintf("Phase changed to: `%s`", orch.Phase())), nil
}
