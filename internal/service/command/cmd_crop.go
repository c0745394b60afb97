package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/orchestrator"
)

type CropCommand struct {
	sessions  *orchestrator.SessionStore
	formatter *ResponseFormatter
}

func NewCropCommand(sessions *orchestrator.SessionStore) *CropCommand {
	return &CropCommand{
		sessions:  sessions,
		formatter: NewResponseFormatter(),
	}
}

func (c *CropCommand) Name() string {
	return "crop"
}

func (c *CropCommand) Description() string {
	return "Record the crop currently in the ground"
}

func (c *CropCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	orch, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}

	if len(args) == 0 {
		current := orch.Context()["current_crop"]
		if current == "" {
			current = "not set"
		}
		return c.formatter.Combine(
			c.formatter.Info("Current Crop"),
			c.formatter.Label("Crop", current),
			c.formatter.Usage("/crop [name]"),
			c.formatter.Examples([]string{"/crop wheat", "/crop moong dal"}),
		), nil
	}

	crop := strings.ToLower(strings.Join(args, " "))
	if err := orch.SetCurrentCrop(ctx, crop); err != nil {
		return "", fmt.Errorf("failed to set crop: %w", err)
	}

	return c.formatter.Success(fmt.Sprintf("Current crop set to: `%s`", crop)), nil
}
