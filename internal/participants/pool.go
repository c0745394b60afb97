package participants

import (
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/farmctx"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/farmtools"
)

// Pool holds the three advisors in fixed rotation order and keeps their
// instructions in sync with the farmer context. Derived instructions are
// cached by context snapshot, so rebuilding against unchanged knowledge is
// a map lookup.
type Pool struct {
	participants []*Participant
	registry     *farmtools.Registry
	farmerType   core.FarmerType

	instructionCache map[string][]string
	lastSnapshot     string
}

func NewPool(registry *farmtools.Registry, farmerType core.FarmerType) *Pool {
	p := &Pool{
		participants: []*Participant{
			{Name: PreSowingAgent, Phase: core.PhasePreSowing, base: preSowingCharter},
			{Name: GrowthAgent, Phase: core.PhaseGrowth, base: growthCharter},
			{Name: HarvestAgent, Phase: core.PhaseHarvest, base: harvestCharter},
		},
		registry:         registry,
		instructionCache: make(map[string][]string),
	}
	p.assignTools(farmerType)

	for _, part := range p.participants {
		part.Instructions = part.base
	}
	return p
}

func (p *Pool) assignTools(farmerType core.FarmerType) {
	p.farmerType = farmerType
	for _, part := range p.participants {
		part.Tools = farmtools.ForPhase(p.registry, part.Phase, farmerType)
	}
}

// Rebuild refreshes every advisor's instructions from the farmer context.
// Idempotent: calling it twice with the same context is a no-op beyond the
// cache lookup. An empty context leaves the base charters untouched.
func (p *Pool) Rebuild(fc *farmctx.FarmerContext) {
	if ft := core.ParseFarmerType(fc.FarmerType); ft != p.farmerType {
		p.assignTools(ft)
	}

	snapshot := fc.Snapshot()
	if snapshot == p.lastSnapshot {
		return
	}

	derived, ok := p.instructionCache[snapshot]
	if !ok {
		block := fc.PromptBlock()
		derived = make([]string, len(p.participants))
		for i, part := range p.participants {
			derived[i] = deriveInstructions(part.base, block)
		}
		p.instructionCache[snapshot] = derived
	}

	for i, part := range p.participants {
		part.Instructions = derived[i]
	}
	p.lastSnapshot = snapshot
}

// Rotation returns the advisors in speaking order.
func (p *Pool) Rotation() []*Participant {
	return p.participants
}

func (p *Pool) Names() []string {
	names := make([]string, len(p.participants))
	for i, part := range p.participants {
		names[i] = part.Name
	}
	return names
}

// CachedInstructionSets reports how many distinct context snapshots have
// been derived so far.
func (p *Pool) CachedInstructionSets() int {
	return len(p.instructionCache)
}
