package orchestrator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
	"github.com/omkarP-bit/Dreamers-AgriTech/internal/farmctx"
)

func TestRenderTaskMessageBareQuestion(t *testing.T) {
	fc := farmctx.New("")
	msg := renderTaskMessage(fc, nil, core.PhasePreSowing, "Which crop should I sow?")

	assert.NotContains(t, msg, "FARMER INFORMATION")
	assert.NotContains(t, msg, "RECENT CONVERSATION HISTORY")
	assert.Contains(t, msg, "CURRENT CROP PHASE: pre_sowing")
	assert.True(t, strings.HasSuffix(msg, "FARMER'S CURRENT QUESTION:\nWhich crop should I sow?"))
}

func TestRenderTaskMessageIncludesKnownFacts(t *testing.T) {
	fc := farmctx.New("traditional")
	fc.SoilType = "sandy"
	fc.Location = "punjab"

	msg := renderTaskMessage(fc, nil, core.PhaseGrowth, "How much water?")

	assert.Contains(t, msg, "FARMER INFORMATION (already provided, do NOT ask again):")
	assert.Contains(t, msg, "  - Soil Type: sandy")
	assert.Contains(t, msg, "  - Location: punjab")
	assert.Contains(t, msg, "  - Farmer Type: traditional")
	assert.Contains(t, msg, "IMPORTANT: Do NOT ask for information already provided above!")
}

func TestRenderTaskMessageHistoryThreshold(t *testing.T) {
	fc := farmctx.New("")

	single := []core.Entry{{Speaker: core.SpeakerFarmer, Text: "hello"}}
	msg := renderTaskMessage(fc, single, core.PhaseGrowth, "hello")
	assert.NotContains(t, msg, "RECENT CONVERSATION HISTORY", "a lone entry is the current turn, not history")

	several := append(single, core.Entry{Speaker: "GrowthAgent", Text: "Hi, how can I help?"})
	msg = renderTaskMessage(fc, several, core.PhaseGrowth, "my leaves are yellow")
	assert.Contains(t, msg, "RECENT CONVERSATION HISTORY:")
	assert.Contains(t, msg, "Farmer: hello")
	assert.Contains(t, msg, "GrowthAgent: Hi, how can I help?")
}

func TestBuildTaskMessageTrimsOldestHistory(t *testing.T) {
	fc := farmctx.New("")

	filler := strings.Repeat("wheat moong dal irrigation schedule and mandi rates ", 1500)
	history := []core.Entry{
		{Speaker: core.SpeakerFarmer, Text: "OLDEST " + filler},
		{Speaker: "GrowthAgent", Text: "MIDDLE short reply"},
		{Speaker: core.SpeakerFarmer, Text: "NEWEST question about harvest timing"},
	}

	msg := buildTaskMessage(fc, history, core.PhaseHarvest, "When do I harvest?")

	require.LessOrEqual(t, countTokens(msg), maxPromptTokens)
	assert.NotContains(t, msg, "OLDEST")
	assert.Contains(t, msg, "MIDDLE short reply")
	assert.Contains(t, msg, "NEWEST question about harvest timing")
	assert.Contains(t, msg, "FARMER'S CURRENT QUESTION:\nWhen do I harvest?")
}

func TestTitleSlot(t *testing.T) {
	assert.Equal(t, "Soil Type", titleSlot("soil_type"))
	assert.Equal(t, "Location", titleSlot("location"))
	assert.Equal(t, "Previous Crop", titleSlot("previous_crop"))
}
