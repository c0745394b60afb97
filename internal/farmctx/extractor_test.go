package farmctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractorUpdate(t *testing.T) {
	e := NewExtractor(nil)

	fc := New("traditional")
	changed := e.Update(fc, "I have clay soil in Punjab and grew rice last season")

	require.ElementsMatch(t, []string{SlotSoilType, SlotLocation, SlotPreviousCrop}, changed)
	assert.Equal(t, "clay", fc.SoilType)
	assert.Equal(t, "punjab", fc.Location)
	assert.Equal(t, "rice", fc.PreviousCrop)
	assert.Equal(t, "traditional", fc.FarmerType)
	assert.Empty(t, fc.CurrentCrop)
}

func TestExtractorRepeatedFactsAreStable(t *testing.T) {
	e := NewExtractor(nil)

	fc := New("traditional")
	e.Update(fc, "my soil is loamy")

	changed := e.Update(fc, "as I said, loamy soil")
	assert.Empty(t, changed)
	assert.Equal(t, "loamy", fc.SoilType)
}

func TestExtractorFirstMatchWins(t *testing.T) {
	e := NewExtractor(nil)

	// Both terms are present; the vocabulary lists wheat before rice.
	fc := New("traditional")
	e.Update(fc, "should I grow rice or wheat this time?")
	assert.Equal(t, "wheat", fc.PreviousCrop)
}

func TestExtractorOverwritesOnNewValue(t *testing.T) {
	e := NewExtractor(nil)

	fc := New("traditional")
	e.Update(fc, "I am farming near Nashik")
	require.Equal(t, "nashik", fc.Location)

	changed := e.Update(fc, "actually I moved to Indore recently")
	assert.Equal(t, []string{SlotLocation}, changed)
	assert.Equal(t, "indore", fc.Location)
}

func TestExtractorFarmerType(t *testing.T) {
	e := NewExtractor(nil)

	fc := New("traditional")
	changed := e.Update(fc, "I run a greenhouse setup")
	assert.Equal(t, []string{SlotFarmerType}, changed)
	assert.Equal(t, "greenhouse", fc.FarmerType)

	// Greenhouse takes precedence when both words appear.
	fc2 := New("")
	e.Update(fc2, "moving from traditional to greenhouse farming")
	assert.Equal(t, "greenhouse", fc2.FarmerType)
}

func TestExtractorNoMatchLeavesContextUntouched(t *testing.T) {
	e := NewExtractor(nil)

	fc := New("traditional")
	fc.SoilType = "black"
	changed := e.Update(fc, "what should I do next week?")

	assert.Empty(t, changed)
	assert.Equal(t, "black", fc.SoilType)
}

func TestExtractorNeverSetsCurrentCrop(t *testing.T) {
	e := NewExtractor(nil)

	fc := New("traditional")
	e.Update(fc, "my current crop is cotton and it looks healthy")
	assert.Empty(t, fc.CurrentCrop)
	assert.Equal(t, "cotton", fc.PreviousCrop)
}
