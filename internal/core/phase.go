package core

import (
	"errors"
	"fmt"
)

// Phase is the crop season stage a session is currently in.
type Phase string

const (
	PhasePreSowing Phase = "pre_sowing"
	PhaseGrowth    Phase = "growth"
	PhaseHarvest   Phase = "harvest"
)

var ErrInvalidPhase = errors.New("invalid phase")

func ParsePhase(s string) (Phase, error) {
	switch Phase(s) {
	case PhasePreSowing, PhaseGrowth, PhaseHarvest:
		return Phase(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPhase, s)
	}
}

func Phases() []Phase {
	return []Phase{PhasePreSowing, PhaseGrowth, PhaseHarvest}
}

// FarmerType decides which capabilities the growth advisor gets.
type FarmerType string

const (
	FarmerTraditional FarmerType = "traditional"
	FarmerGreenhouse  FarmerType = "greenhouse"
)

func ParseFarmerType(s string) FarmerType {
	if FarmerType(s) == FarmerGreenhouse {
		return FarmerGreenhouse
	}
	return FarmerTraditional
}
