package orchestrator

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/participants"
)

//go:embed selector.yaml
var defaultSelectorConfig []byte

// SelectorConfig holds the topic keywords per advisor and the recommendation
// markers rewarded in replies.
type SelectorConfig struct {
	PreSowingKeywords []string `yaml:"pre_sowing_keywords"`
	GrowthKeywords    []string `yaml:"growth_keywords"`
	HarvestKeywords   []string `yaml:"harvest_keywords"`
	Recommendation    []string `yaml:"recommendation_markers"`
}

func LoadSelectorConfig(path string) (*SelectorConfig, error) {
	data := defaultSelectorConfig
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			data = b
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read selector config: %w", err)
		}
	}

	cfg := &SelectorConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse selector config: %w", err)
	}
	return cfg, nil
}

func DefaultSelectorConfig() *SelectorConfig {
	cfg := &SelectorConfig{}
	if err := yaml.Unmarshal(defaultSelectorConfig, cfg); err != nil {
		panic(err)
	}
	return cfg
}

// Selector picks the most relevant candidate with deterministic keyword
// scoring. No model call involved.
type Selector struct {
	cfg *SelectorConfig
}

func NewSelector(cfg *SelectorConfig) *Selector {
	if cfg == nil {
		cfg = DefaultSelectorConfig()
	}
	return &Selector{cfg: cfg}
}

func (s *Selector) keywordsFor(agent string) []string {
	name := strings.ToLower(agent)
	switch {
	case strings.Contains(name, "presowing") || strings.Contains(name, "pre-sowing"):
		return s.cfg.PreSowingKeywords
	case strings.Contains(name, "growth"):
		return s.cfg.GrowthKeywords
	case strings.Contains(name, "harvest"):
		return s.cfg.HarvestKeywords
	}
	return nil
}

func phaseFor(agent string) core.Phase {
	switch agent {
	case participants.PreSowingAgent:
		return core.PhasePreSowing
	case participants.GrowthAgent:
		return core.PhaseGrowth
	case participants.HarvestAgent:
		return core.PhaseHarvest
	}
	return ""
}

// Score rates one candidate against the farmer's message and the current
// phase.
func (s *Selector) Score(c core.Candidate, farmerMessage string, phase core.Phase) int {
	messageLower := strings.ToLower(farmerMessage)
	score := 0

	for _, kw := range s.keywordsFor(c.Agent) {
		if strings.Contains(messageLower, kw) {
			score += 10
		}
	}

	if phaseFor(c.Agent) == phase {
		score += 5
	}

	// Quality heuristics on the reply itself.
	if len(c.Text) < 50 {
		score -= 20
	}
	if strings.Contains(c.Text, "?") {
		score += 3
	}
	replyLower := strings.ToLower(c.Text)
	for _, marker := range s.cfg.Recommendation {
		if strings.Contains(replyLower, marker) {
			score += 5
			break
		}
	}

	return score
}

// Select returns the winning candidate. Candidates must be in rotation
// order; ties keep that order. ok is false when there is nothing to pick.
func (s *Selector) Select(candidates []core.Candidate, farmerMessage string, phase core.Phase) (core.Candidate, bool) {
	if len(candidates) == 0 {
		return core.Candidate{}, false
	}

	scored := make([]core.Candidate, len(candidates))
	copy(scored, candidates)

	scores := make(map[int]int, len(scored))
	for i, c := range scored {
		scores[i] = s.Score(c, farmerMessage, phase)
	}

	indexes := make([]int, len(scored))
	for i := range indexes {
		indexes[i] = i
	}
	sort.SliceStable(indexes, func(a, b int) bool {
		return scores[indexes[a]] > scores[indexes[b]]
	})

	return scored[indexes[0]], true
}
