// Package orchestrator coordinates the advisor rotation for one farming
// season: context extraction, prompt assembly, the round itself and final
// response selection.
package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/chatlog"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/farmctx"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/farmtools"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/participants"
	"github.com/omkarP-bit/Dreamers-AgriTech/pkg/log"
)

// Fallback texts mirrored in transports; keep wording stable.
const (
	emptyRoundFallback = "I'm processing your request. Could you provide more details?"
	failureTemplate    = "I encountered an issue: %v. Please try again."
)

// Config carries the per-session knobs the orchestrator needs.
type Config struct {
	SessionID          string
	Phase              core.Phase
	FarmerType         core.FarmerType
	CurrentCrop        string
	HistoryWindow      int
	ParticipantTimeout time.Duration

	Vocabulary *farmctx.Vocabulary
	Selector   *SelectorConfig

	Client        core.ModelClient
	Conversations core.ConversationRepository
	Seasons       core.SeasonRepository
	WeatherAPIKey string
}

// Orchestrator owns all mutable state of one advisory session. All public
// methods serialize on an internal mutex, so concurrent callers are handled
// one at a time in arrival order.
type Orchestrator struct {
	mu sync.Mutex

	sessionID   string
	phase       core.Phase
	farmerType  core.FarmerType
	currentCrop string

	fc        *farmctx.FarmerContext
	extractor *farmctx.Extractor
	log       *chatlog.Log
	pool      *participants.Pool
	selector  *Selector
	round     *Round

	historyWindow int
	conversations core.ConversationRepository
	seasons       core.SeasonRepository
}

func New(cfg Config) *Orchestrator {
	fc := farmctx.New(string(cfg.FarmerType))
	fc.CurrentCrop = cfg.CurrentCrop

	registry := farmtools.Build(farmtools.Options{
		WeatherAPIKey: cfg.WeatherAPIKey,
		FarmerType:    cfg.FarmerType,
		CurrentCrop:   cfg.CurrentCrop,
	})

	historyWindow := cfg.HistoryWindow
	if historyWindow <= 0 {
		historyWindow = 8
	}
	timeout := cfg.ParticipantTimeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}

	return &Orchestrator{
		sessionID:     cfg.SessionID,
		phase:         cfg.Phase,
		farmerType:    cfg.FarmerType,
		currentCrop:   cfg.CurrentCrop,
		fc:            fc,
		extractor:     farmctx.NewExtractor(cfg.Vocabulary),
		log:           chatlog.New(),
		pool:          participants.NewPool(registry, cfg.FarmerType),
		selector:      NewSelector(cfg.Selector),
		round:         NewRound(cfg.Client, timeout),
		historyWindow: historyWindow,
		conversations: cfg.Conversations,
		seasons:       cfg.Seasons,
	}
}

// Rehydrate replays persisted entries into the in-memory state: the log is
// restored verbatim and farmer utterances run back through the extractor so
// the context survives restarts.
func (o *Orchestrator) Rehydrate(entries []core.Entry) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.log.Restore(entries)
	for _, e := range entries {
		if e.Speaker == core.SpeakerFarmer {
			o.extractor.Update(o.fc, e.Text)
		}
	}
	o.pool.Rebuild(o.fc)
}

// ProcessMessage runs one full turn. The returned result is always usable:
// round-level trouble degrades to a fallback text, only unexpected faults
// flip Success to false.
func (o *Orchestrator) ProcessMessage(ctx context.Context, farmerMessage string) (result core.Result) {
	o.mu.Lock()
	defer o.mu.Unlock()

	logger := log.FromCtx(ctx)

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().Interface("panic", rec).Str("session", o.sessionID).Msg("orchestration panic")
			result = o.failureResult(fmt.Errorf("%v", rec))
		}
	}()

	if changed := o.extractor.Update(o.fc, farmerMessage); len(changed) > 0 {
		logger.Info().Strs("slots", changed).Str("session", o.sessionID).Msg("farmer context updated")
	}
	o.pool.Rebuild(o.fc)

	o.append(ctx, core.SpeakerFarmer, farmerMessage, nil)

	task := buildTaskMessage(o.fc, o.log.Tail(o.historyWindow), o.phase, farmerMessage)

	candidates := o.round.Run(ctx, o.pool, task)
	for _, c := range candidates {
		o.append(ctx, c.Agent, c.Text, nil)
	}

	finalText := emptyRoundFallback
	selectedAgent := core.SpeakerSystem
	if selected, ok := o.selector.Select(candidates, farmerMessage, o.phase); ok {
		finalText, selectedAgent = selected.Text, selected.Agent
	} else {
		logger.Warn().Str("session", o.sessionID).Msg("round produced no candidates, using fallback")
	}

	return core.Result{
		FinalResponse: finalText,
		SelectedAgent: selectedAgent,
		Candidates:    candidates,
		Context:       o.fc.Map(),
		Phase:         o.phase,
		Success:       true,
	}
}

func (o *Orchestrator) failureResult(err error) core.Result {
	return core.Result{
		FinalResponse: fmt.Sprintf(failureTemplate, err),
		Context:       o.fc.Map(),
		Phase:         o.phase,
		Success:       false,
		Error:         err.Error(),
	}
}

// append records an utterance in memory and, when storage is wired, on
// disk. Persistence trouble is logged, never fatal to the turn.
func (o *Orchestrator) append(ctx context.Context, speaker, text string, metadata map[string]string) {
	entry := o.log.Append(speaker, text, metadata)
	if o.conversations == nil {
		return
	}
	if err := o.conversations.AppendEntry(ctx, o.sessionID, entry); err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("session", o.sessionID).Msg("failed to persist entry")
	}
}

// UpdatePhase switches the season stage. Unknown phases leave the state
// untouched and surface core.ErrInvalidPhase.
func (o *Orchestrator) UpdatePhase(ctx context.Context, phase string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	parsed, err := core.ParsePhase(phase)
	if err != nil {
		return err
	}

	old := o.phase
	o.phase = parsed
	log.FromCtx(ctx).Info().
		Str("session", o.sessionID).
		Str("from", string(old)).
		Str("to", string(parsed)).
		Msg("phase updated")
	return o.saveSeason(ctx)
}

// SetCurrentCrop records what is actually in the ground. This is the only
// way the current crop slot changes.
func (o *Orchestrator) SetCurrentCrop(ctx context.Context, crop string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.currentCrop = crop
	o.fc.SetCurrentCrop(crop)
	o.pool.Rebuild(o.fc)
	return o.saveSeason(ctx)
}

func (o *Orchestrator) saveSeason(ctx context.Context) error {
	if o.seasons == nil {
		return nil
	}
	return o.seasons.SaveSeason(ctx, core.Season{
		ID:          o.sessionID,
		Phase:       o.phase,
		FarmerType:  o.farmerType,
		CurrentCrop: o.currentCrop,
	})
}

// Reset drops the transcript and learned context; the phase and farmer
// type survive.
func (o *Orchestrator) Reset(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.log.Reset()
	o.fc = farmctx.New(string(o.farmerType))
	o.fc.CurrentCrop = o.currentCrop
	o.pool.Rebuild(o.fc)

	if o.conversations != nil {
		if err := o.conversations.DeleteEntries(ctx, o.sessionID); err != nil {
			return fmt.Errorf("delete entries: %w", err)
		}
	}
	log.FromCtx(ctx).Info().Str("session", o.sessionID).Msg("conversation reset")
	return nil
}

// Snapshot accessors used by commands and transports.

func (o *Orchestrator) Phase() core.Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

func (o *Orchestrator) Context() map[string]string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.fc.Map()
}

func (o *Orchestrator) History() []core.Entry {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.log.All()
}

// AgentInfo describes one advisor for status displays.
type AgentInfo struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

func (o *Orchestrator) Agents() []AgentInfo {
	o.mu.Lock()
	defer o.mu.Unlock()

	roles := map[string]string{
		participants.PreSowingAgent: "Crop planning and soil analysis",
		participants.GrowthAgent:    "Growth monitoring and adaptation",
		participants.HarvestAgent:   "Harvest timing and market guidance",
	}

	var infos []AgentInfo
	for _, p := range o.pool.Rotation() {
		infos = append(infos, AgentInfo{
			Name:   p.Name,
			Role:   roles[p.Name],
			Active: p.Phase == o.phase,
		})
	}
	return infos
}
