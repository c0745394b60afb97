package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestConversationsRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationsRepo(newTestDB(t))

	require.NoError(t, repo.AppendEntry(ctx, "s1", core.Entry{Speaker: core.SpeakerFarmer, Text: "I have clay soil"}))
	require.NoError(t, repo.AppendEntry(ctx, "s1", core.Entry{
		Speaker:  "PreSowingAgent",
		Text:     "Clay soil suits rice and wheat.",
		Metadata: map[string]string{"selected": "true"},
	}))
	require.NoError(t, repo.AppendEntry(ctx, "s2", core.Entry{Speaker: core.SpeakerFarmer, Text: "other session"}))

	entries, err := repo.ListEntries(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "I have clay soil", entries[0].Text)
	assert.Equal(t, "PreSowingAgent", entries[1].Speaker)
	assert.Equal(t, map[string]string{"selected": "true"}, entries[1].Metadata)
}

func TestListEntriesLimitKeepsNewest(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationsRepo(newTestDB(t))

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.AppendEntry(ctx, "s1", core.Entry{
			Speaker: core.SpeakerFarmer,
			Text:    string(rune('a' + i)),
		}))
	}

	entries, err := repo.ListEntries(ctx, "s1", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "d", entries[0].Text)
	assert.Equal(t, "e", entries[1].Text)
}

func TestDeleteEntries(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationsRepo(newTestDB(t))

	require.NoError(t, repo.AppendEntry(ctx, "s1", core.Entry{Speaker: core.SpeakerFarmer, Text: "hello"}))
	require.NoError(t, repo.DeleteEntries(ctx, "s1"))

	entries, err := repo.ListEntries(ctx, "s1", 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSeasonsUpsert(t *testing.T) {
	ctx := context.Background()
	repo := NewSeasonsRepo(newTestDB(t))

	_, err := repo.GetSeason(ctx, "season-1")
	assert.ErrorIs(t, err, core.ErrSeasonNotFound)

	require.NoError(t, repo.SaveSeason(ctx, core.Season{
		ID:         "season-1",
		Phase:      core.PhasePreSowing,
		FarmerType: core.FarmerTraditional,
	}))

	season, err := repo.GetSeason(ctx, "season-1")
	require.NoError(t, err)
	assert.Equal(t, core.PhasePreSowing, season.Phase)

	season.Phase = core.PhaseGrowth
	season.CurrentCrop = "rice"
	require.NoError(t, repo.SaveSeason(ctx, season))

	updated, err := repo.GetSeason(ctx, "season-1")
	require.NoError(t, err)
	assert.Equal(t, core.PhaseGrowth, updated.Phase)
	assert.Equal(t, "rice", updated.CurrentCrop)
	assert.WithinDuration(t, season.CreatedAt, updated.CreatedAt, time.Second)
}
