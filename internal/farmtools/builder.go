package farmtools

import (
	"time"

	"github.com/omkarP-bit/Dreamers-AgriTech/internal/core"
)

// Options for building one session's registry.
type Options struct {
	WeatherAPIKey string
	FarmerType    core.FarmerType
	CurrentCrop   string
}

// Build assembles the full capability registry for one session. Both farming
// styles are registered up front because the farmer can reveal a greenhouse
// mid-conversation; phase subsets decide what each advisor actually sees.
func Build(opts Options) *Registry {
	r := NewRegistry()

	registerWeatherCapabilities(r, NewWeatherClient(opts.WeatherAPIKey))
	registerSeasonalCapabilities(r)
	registerMarketCapabilities(r)
	registerPlantCapabilities(r)

	crop := opts.CurrentCrop
	if crop == "" {
		crop = "tomato"
	}
	registerGreenhouseCapabilities(r, NewGreenhouse(crop, time.Now()))

	return r
}

// ForPhase returns the capability subset one advisor may call. The growth
// advisor's set depends on the farming style.
func ForPhase(r *Registry, phase core.Phase, farmerType core.FarmerType) *Registry {
	switch phase {
	case core.PhasePreSowing:
		return r.Subset(
			"get_weather_forecast",
			"get_seasonal_patterns",
			"analyze_soil_suitability",
			"get_market_prices",
			"get_price_forecast",
		)
	case core.PhaseGrowth:
		if farmerType == core.FarmerGreenhouse {
			return r.Subset(
				"get_weather_forecast",
				"read_sensors",
				"control_environment",
				"get_recommendations",
			)
		}
		return r.Subset(
			"get_weather_forecast",
			"analyze_plant_description",
			"extract_plant_metrics",
			"compare_with_expected",
		)
	case core.PhaseHarvest:
		return r.Subset(
			"get_current_market_price",
			"find_marketplaces",
			"calculate_profit",
			"get_price_forecast",
		)
	}
	return NewRegistry()
}
