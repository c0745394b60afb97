package orchestrator

import (
	"container/list"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/farmctx"
	"github.com/omkarP-bit/Dreamers-AgriTech/pkg/log"
)

// StoreConfig is the shared wiring every session inherits.
type StoreConfig struct {
	Client        core.ModelClient
	Conversations core.ConversationRepository
	Seasons       core.SeasonRepository

	DefaultPhase       core.Phase
	DefaultFarmerType  core.FarmerType
	HistoryWindow      int
	ParticipantTimeout time.Duration
	CacheSize          int
	WeatherAPIKey      string

	// Word lists loaded once at startup and shared by every session.
	Vocabulary *farmctx.Vocabulary
	Selector   *SelectorConfig
}

// SessionStore hands out one Orchestrator per session id, rehydrating cold
// sessions from storage and evicting the least recently used beyond the
// cache size. Evicted sessions lose only memory; storage keeps everything.
type SessionStore struct {
	mu    sync.Mutex
	cfg   StoreConfig
	cache map[string]*list.Element
	order *list.List
}

type cacheItem struct {
	id   string
	orch *Orchestrator
}

func NewSessionStore(cfg StoreConfig) *SessionStore {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 64
	}
	if cfg.DefaultPhase == "" {
		cfg.DefaultPhase = core.PhasePreSowing
	}
	if cfg.DefaultFarmerType == "" {
		cfg.DefaultFarmerType = core.FarmerTraditional
	}
	return &SessionStore{
		cfg:   cfg,
		cache: make(map[string]*list.Element),
		order: list.New(),
	}
}

// Get returns the orchestrator for id, creating and rehydrating it on a
// cache miss. An empty id starts a fresh anonymous session.
func (s *SessionStore) Get(ctx context.Context, id string) (*Orchestrator, error) {
	if id == "" {
		id = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.cache[id]; ok {
		s.order.MoveToFront(el)
		return el.Value.(*cacheItem).orch, nil
	}

	orch, err := s.build(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache[id] = s.order.PushFront(&cacheItem{id: id, orch: orch})
	s.evict(ctx)
	return orch, nil
}

// build loads or creates the season record and replays the transcript.
func (s *SessionStore) build(ctx context.Context, id string) (*Orchestrator, error) {
	season := core.Season{
		ID:         id,
		Phase:      s.cfg.DefaultPhase,
		FarmerType: s.cfg.DefaultFarmerType,
	}

	if s.cfg.Seasons != nil {
		stored, err := s.cfg.Seasons.GetSeason(ctx, id)
		switch {
		case err == nil:
			season = stored
		case errors.Is(err, core.ErrSeasonNotFound):
			if err := s.cfg.Seasons.SaveSeason(ctx, season); err != nil {
				return nil, err
			}
		default:
			return nil, err
		}
	}

	orch := New(Config{
		SessionID:          id,
		Phase:              season.Phase,
		FarmerType:         season.FarmerType,
		CurrentCrop:        season.CurrentCrop,
		HistoryWindow:      s.cfg.HistoryWindow,
		ParticipantTimeout: s.cfg.ParticipantTimeout,
		Vocabulary:         s.cfg.Vocabulary,
		Selector:           s.cfg.Selector,
		Client:             s.cfg.Client,
		Conversations:      s.cfg.Conversations,
		Seasons:            s.cfg.Seasons,
		WeatherAPIKey:      s.cfg.WeatherAPIKey,
	})

	if s.cfg.Conversations != nil {
		entries, err := s.cfg.Conversations.ListEntries(ctx, id, 0)
		if err != nil {
			return nil, err
		}
		if len(entries) > 0 {
			orch.Rehydrate(entries)
			log.FromCtx(ctx).Info().
				Str("session", id).
				Int("entries", len(entries)).
				Msg("session rehydrated from storage")
		}
	}

	return orch, nil
}

func (s *SessionStore) evict(ctx context.Context) {
	for s.order.Len() > s.cfg.CacheSize {
		oldest := s.order.Back()
		if oldest == nil {
			return
		}
		item := oldest.Value.(*cacheItem)
		s.order.Remove(oldest)
		delete(s.cache, item.id)
		log.FromCtx(ctx).Debug().Str("session", item.id).Msg("session evicted from cache")
	}
}

// Process is the inbound boundary: route one farmer message to its session.
func (s *SessionStore) Process(ctx context.Context, sessionID, text string) (core.Result, error) {
	orch, err := s.Get(ctx, sessionID)
	if err != nil {
		return core.Result{}, err
	}
	return orch.ProcessMessage(ctx, text), nil
}

// Len reports how many sessions are currently resident.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}
