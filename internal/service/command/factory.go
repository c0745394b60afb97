package command

import (
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/orchestrator"
)

func NewCommands(sessions *orchestrator.SessionStore) []core.Command {
	return []core.Command{
		NewPhaseCommand(sessions),
		NewCropCommand(sessions),
		NewContextCommand(sessions),
		NewAgentsCommand(sessions),
		NewResetCommand(sessions),
	}
}
