package farmtools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentSeason(t *testing.T) {
	season, ok := CurrentSeason("Ludhiana, Punjab", 7)
	require.True(t, ok)
	assert.Equal(t, "kharif", season.SeasonType)
	assert.Contains(t, season.SuitableCrops, "rice")

	season, ok = CurrentSeason("Punjab", 12)
	require.True(t, ok)
	assert.Equal(t, "rabi", season.SeasonType)
	assert.Contains(t, season.SuitableCrops, "wheat")
}

func TestPatternForLocationFallback(t *testing.T) {
	pattern := PatternForLocation("Somewhere Unknown")
	assert.Equal(t, "North India", pattern.Region)
}

func TestSixMonthWeatherWrapsYear(t *testing.T) {
	outlook := SixMonthWeather("Punjab", 11)
	require.NotEmpty(t, outlook.Predictions)

	// November through April covers the year boundary.
	months := make([]int, 0, len(outlook.Predictions))
	for _, p := range outlook.Predictions {
		months = append(months, p.Month)
	}
	assert.Contains(t, months, 11)
	assert.Contains(t, months, 1)
}

func TestSoilSuitability(t *testing.T) {
	report := SoilSuitability("clay", nil)
	assert.ElementsMatch(t, []string{"rice", "wheat", "cotton"}, report.SuitableCrops)

	report = SoilSuitability("sandy", []string{"rice", "moong_dal"})
	assert.Equal(t, []string{"moong_dal"}, report.SuitableCrops)

	// Unknown soils fall back to the staples.
	report = SoilSuitability("volcanic", []string{"rice", "wheat", "cotton"})
	assert.ElementsMatch(t, []string{"rice", "wheat"}, report.SuitableCrops)
}

func TestCropProfileFor(t *testing.T) {
	profile, ok := CropProfileFor("Moong Dal")
	require.True(t, ok)
	assert.Equal(t, 60, profile.DurationDays)
	assert.Equal(t, "kharif", profile.GrowingSeason)

	_, ok = CropProfileFor("dragonfruit")
	assert.False(t, ok)
}
