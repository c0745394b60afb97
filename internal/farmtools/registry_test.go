package farmtools

import (
	"context"
	"testing"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryInvoke(t *testing.T) {
	r := Build(Options{FarmerType: core.FarmerTraditional})

	out := r.Invoke(context.Background(), "calculate_profit",
		`{"yield_quintals": 10, "selling_price_per_quintal": 2000, "seed_cost": 1000}`)
	assert.Contains(t, out, `"net_profit":19000`)

	out = r.Invoke(context.Background(), "no_such_tool", `{}`)
	assert.Contains(t, out, "unknown tool")

	out = r.Invoke(context.Background(), "calculate_profit", `not json`)
	assert.Contains(t, out, "error:")
}

func TestBuildCarriesBothFarmingStyles(t *testing.T) {
	// The full registry holds both styles; phase subsets do the gating, so a
	// farmer revealing a greenhouse mid-conversation just changes the subset.
	r := Build(Options{FarmerType: core.FarmerTraditional})
	assert.Contains(t, r.Names(), "analyze_plant_description")
	assert.Contains(t, r.Names(), "read_sensors")

	growth := ForPhase(r, core.PhaseGrowth, core.FarmerTraditional)
	assert.NotContains(t, growth.Names(), "read_sensors")

	growth = ForPhase(r, core.PhaseGrowth, core.FarmerGreenhouse)
	assert.NotContains(t, growth.Names(), "analyze_plant_description")
	assert.Contains(t, growth.Names(), "read_sensors")
}

func TestForPhaseSubsets(t *testing.T) {
	r := Build(Options{FarmerType: core.FarmerTraditional})

	preSowing := ForPhase(r, core.PhasePreSowing, core.FarmerTraditional)
	assert.Equal(t, []string{
		"get_weather_forecast",
		"get_seasonal_patterns",
		"analyze_soil_suitability",
		"get_market_prices",
		"get_price_forecast",
	}, preSowing.Names())

	growth := ForPhase(r, core.PhaseGrowth, core.FarmerTraditional)
	assert.Contains(t, growth.Names(), "analyze_plant_description")

	harvest := ForPhase(r, core.PhaseHarvest, core.FarmerTraditional)
	assert.Contains(t, harvest.Names(), "find_marketplaces")
	assert.NotContains(t, harvest.Names(), "get_weather_forecast")
}

func TestForPhaseGreenhouseGrowth(t *testing.T) {
	r := Build(Options{FarmerType: core.FarmerGreenhouse})

	growth := ForPhase(r, core.PhaseGrowth, core.FarmerGreenhouse)
	assert.ElementsMatch(t, []string{
		"get_weather_forecast", "read_sensors", "control_environment", "get_recommendations",
	}, growth.Names())
}

func TestToolsWireFormat(t *testing.T) {
	r := Build(Options{FarmerType: core.FarmerTraditional})
	tools := r.Tools()
	require.NotEmpty(t, tools)

	for _, tool := range tools {
		assert.Equal(t, "function", tool.Type)
		assert.NotEmpty(t, tool.Function.Name)
		assert.NotEmpty(t, tool.Function.Parameters)
	}
}
