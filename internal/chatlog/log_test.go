package chatlog

import (
	"fmt"
	"testing"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendPreservesOrder(t *testing.T) {
	l := New()

	for i := 0; i < 5; i++ {
		l.Append(core.SpeakerFarmer, fmt.Sprintf("message %d", i), nil)
	}

	entries := l.All()
	require.Len(t, entries, 5)
	for i, e := range entries {
		assert.Equal(t, fmt.Sprintf("message %d", i), e.Text)
		if i > 0 {
			assert.False(t, e.Timestamp.Before(entries[i-1].Timestamp))
		}
	}
}

func TestTail(t *testing.T) {
	l := New()
	for i := 0; i < 10; i++ {
		l.Append("GrowthAgent", fmt.Sprintf("reply %d", i), nil)
	}

	tail := l.Tail(3)
	require.Len(t, tail, 3)
	assert.Equal(t, "reply 7", tail[0].Text)
	assert.Equal(t, "reply 9", tail[2].Text)

	assert.Len(t, l.Tail(100), 10)
	assert.Nil(t, l.Tail(0))
}

func TestAllReturnsCopy(t *testing.T) {
	l := New()
	l.Append(core.SpeakerFarmer, "original", nil)

	entries := l.All()
	entries[0].Text = "mutated"

	assert.Equal(t, "original", l.All()[0].Text)
}

func TestReset(t *testing.T) {
	l := New()
	l.Append(core.SpeakerFarmer, "hello", nil)
	l.Append(core.SpeakerSystem, "hi", nil)

	l.Reset()
	assert.Zero(t, l.Len())
	assert.Empty(t, l.All())
}

func TestRestoreKeepsTimestamps(t *testing.T) {
	l := New()
	saved := []core.Entry{
		{Speaker: core.SpeakerFarmer, Text: "old question"},
		{Speaker: "PreSowingAgent", Text: "old answer"},
	}
	l.Restore(saved)
	l.Append(core.SpeakerFarmer, "new question", nil)

	entries := l.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "old question", entries[0].Text)
	assert.Equal(t, "new question", entries[2].Text)
}
