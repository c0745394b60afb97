package participants

import (
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/farmtools"
)

// Advisor names as they appear in transcripts and selection results.
const (
	PreSowingAgent = "PreSowingAgent"
	GrowthAgent    = "GrowthAgent"
	HarvestAgent   = "HarvestAgent"
)

// Participant is one advisor in the rotation: a charter, the derived
// instructions currently in force, and the capabilities it may call.
type Participant struct {
	Name  string
	Phase core.Phase

	base         string
	Instructions string

	Tools *farmtools.Registry
}

// deriveInstructions is pure: same charter and context block always yield
// the same instructions.
func deriveInstructions(base, contextBlock string) string {
	if contextBlock == "" {
		return base
	}
	return base + contextBlock
}
