package orchestrator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
)

// memStore backs both repositories in memory for session store tests.
type memStore struct {
	mu      sync.Mutex
	entries map[string][]core.Entry
	seasons map[string]core.Season
}

func newMemStore() *memStore {
	return &memStore{
		entries: make(map[string][]core.Entry),
		seasons: make(map[string]core.Season),
	}
}

func (m *memStore) AppendEntry(_ context.Context, sessionID string, entry core.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[sessionID] = append(m.entries[sessionID], entry)
	return nil
}

func (m *memStore) ListEntries(_ context.Context, sessionID string, limit int) ([]core.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := m.entries[sessionID]
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	out := make([]core.Entry, len(entries))
	copy(out, entries)
	return out, nil
}

func (m *memStore) DeleteEntries(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, sessionID)
	return nil
}

func (m *memStore) SaveSeason(_ context.Context, season core.Season) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seasons[season.ID] = season
	return nil
}

func (m *memStore) GetSeason(_ context.Context, id string) (core.Season, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	season, ok := m.seasons[id]
	if !ok {
		return core.Season{}, core.ErrSeasonNotFound
	}
	return season, nil
}

func newTestStore(repos *memStore, cacheSize int) *SessionStore {
	return NewSessionStore(StoreConfig{
		Client:        newFakeClient(textReply("x")),
		Conversations: repos,
		Seasons:       repos,
		CacheSize:     cacheSize,
	})
}

func TestSessionStoreCreatesAndReuses(t *testing.T) {
	repos := newMemStore()
	store := newTestStore(repos, 4)
	ctx := context.Background()

	first, err := store.Get(ctx, "farmer-1")
	require.NoError(t, err)

	again, err := store.Get(ctx, "farmer-1")
	require.NoError(t, err)
	assert.Same(t, first, again)

	// A new session persists its season with the configured defaults.
	season, err := repos.GetSeason(ctx, "farmer-1")
	require.NoError(t, err)
	assert.Equal(t, core.PhasePreSowing, season.Phase)
	assert.Equal(t, core.FarmerTraditional, season.FarmerType)
}

func TestSessionStoreAssignsAnonymousID(t *testing.T) {
	store := newTestStore(newMemStore(), 4)

	a, err := store.Get(context.Background(), "")
	require.NoError(t, err)
	b, err := store.Get(context.Background(), "")
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Equal(t, 2, store.Len())
}

func TestSessionStoreEvictsLeastRecentlyUsed(t *testing.T) {
	repos := newMemStore()
	store := newTestStore(repos, 2)
	ctx := context.Background()

	first, err := store.Get(ctx, "a")
	require.NoError(t, err)
	_, err = store.Get(ctx, "b")
	require.NoError(t, err)

	// Touch "a" so "b" becomes the eviction target.
	_, err = store.Get(ctx, "a")
	require.NoError(t, err)
	_, err = store.Get(ctx, "c")
	require.NoError(t, err)

	assert.Equal(t, 2, store.Len())

	again, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Same(t, first, again, "recently used session must survive eviction")
}

func TestSessionStoreProcessPersistsEntries(t *testing.T) {
	repos := newMemStore()
	store := NewSessionStore(StoreConfig{
		Client:        newFakeClient(textReply("A reply with enough substance to count as a real candidate answer.")),
		Conversations: repos,
		Seasons:       repos,
	})
	ctx := context.Background()

	result, err := store.Process(ctx, "farmer-2", "I grow rice near Patna")
	require.NoError(t, err)
	require.True(t, result.Success)

	// Farmer message plus one candidate per advisor reach durable storage.
	persisted, err := repos.ListEntries(ctx, "farmer-2", 0)
	require.NoError(t, err)
	assert.Len(t, persisted, 4)
	assert.Equal(t, core.SpeakerFarmer, persisted[0].Speaker)
}

func TestSessionStoreRehydratesFromStorage(t *testing.T) {
	repos := newMemStore()
	ctx := context.Background()

	require.NoError(t, repos.SaveSeason(ctx, core.Season{
		ID:         "returning",
		Phase:      core.PhaseGrowth,
		FarmerType: core.FarmerTraditional,
	}))
	now := time.Now().UTC()
	require.NoError(t, repos.AppendEntry(ctx, "returning", core.Entry{
		Speaker: core.SpeakerFarmer, Text: "I have loamy soil in Jalgaon", Timestamp: now,
	}))
	require.NoError(t, repos.AppendEntry(ctx, "returning", core.Entry{
		Speaker: "GrowthAgent", Text: "Noted, loamy soil works well there.", Timestamp: now.Add(time.Second),
	}))

	store := newTestStore(repos, 4)
	orch, err := store.Get(ctx, "returning")
	require.NoError(t, err)

	assert.Equal(t, core.PhaseGrowth, orch.Phase())
	assert.Len(t, orch.History(), 2)

	// Farmer utterances are replayed through extraction, advisor ones not.
	fc := orch.Context()
	assert.Equal(t, "loamy", fc["soil_type"])
	assert.Equal(t, "jalgaon", fc["location"])
}
