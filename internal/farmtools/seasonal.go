package farmtools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Seasonal climatology per state. Free weather tiers have no historical
// data, so planning advice leans on these curated patterns instead.
type SeasonPattern struct {
	SeasonType       string   `json:"season_type,omitempty"`
	Name             string   `json:"name"`
	Months           []int    `json:"months"`
	AvgRainfallMm    float64  `json:"avg_rainfall_mm"`
	TemperatureRange [2]int   `json:"temperature_range"`
	HumidityAvg      int      `json:"humidity_avg"`
	SuitableCrops    []string `json:"suitable_crops"`
	Description      string   `json:"description"`
}

type RegionPattern struct {
	Region   string
	Patterns map[string]SeasonPattern
}

var seasonalPatterns = map[string]RegionPattern{
	"Punjab": {
		Region: "North India",
		Patterns: map[string]SeasonPattern{
			"kharif": {
				Name: "Kharif/Monsoon Season", Months: []int{6, 7, 8, 9, 10},
				AvgRainfallMm: 800, TemperatureRange: [2]int{25, 38}, HumidityAvg: 75,
				SuitableCrops: []string{"rice", "cotton", "maize", "sugarcane", "millets"},
				Description:   "Heavy monsoon rains, high humidity, warm temperatures",
			},
			"rabi": {
				Name: "Rabi/Winter Season", Months: []int{11, 12, 1, 2, 3},
				AvgRainfallMm: 100, TemperatureRange: [2]int{5, 25}, HumidityAvg: 55,
				SuitableCrops: []string{"wheat", "barley", "mustard", "chickpea", "peas"},
				Description:   "Cool dry weather, occasional winter rain, ideal for wheat",
			},
			"zaid": {
				Name: "Zaid/Summer Season", Months: []int{4, 5},
				AvgRainfallMm: 50, TemperatureRange: [2]int{30, 45}, HumidityAvg: 40,
				SuitableCrops: []string{"watermelon", "cucumber", "muskmelon", "vegetables"},
				Description:   "Hot and dry, requires irrigation",
			},
		},
	},
	"Haryana": {
		Region: "North India",
		Patterns: map[string]SeasonPattern{
			"kharif": {
				Name: "Monsoon Season", Months: []int{6, 7, 8, 9},
				AvgRainfallMm: 600, TemperatureRange: [2]int{25, 38}, HumidityAvg: 70,
				SuitableCrops: []string{"rice", "cotton", "bajra", "jowar"},
				Description:   "Monsoon dependent, moderate rainfall",
			},
			"rabi": {
				Name: "Winter Season", Months: []int{11, 12, 1, 2, 3},
				AvgRainfallMm: 80, TemperatureRange: [2]int{7, 23}, HumidityAvg: 60,
				SuitableCrops: []string{"wheat", "barley", "mustard", "gram"},
				Description:   "Cool winters, wheat belt region",
			},
		},
	},
	"Maharashtra": {
		Region: "West India",
		Patterns: map[string]SeasonPattern{
			"kharif": {
				Name: "Monsoon Season", Months: []int{6, 7, 8, 9, 10},
				AvgRainfallMm: 1200, TemperatureRange: [2]int{24, 32}, HumidityAvg: 80,
				SuitableCrops: []string{"rice", "cotton", "soybean", "sugarcane", "millets"},
				Description:   "Heavy western ghats monsoon, high rainfall",
			},
			"rabi": {
				Name: "Winter Season", Months: []int{11, 12, 1, 2},
				AvgRainfallMm: 50, TemperatureRange: [2]int{15, 28}, HumidityAvg: 50,
				SuitableCrops: []string{"wheat", "chickpea", "jowar", "vegetables"},
				Description:   "Mild winter, less rainfall",
			},
		},
	},
	"Uttar Pradesh": {
		Region: "North India",
		Patterns: map[string]SeasonPattern{
			"kharif": {
				Name: "Monsoon Season", Months: []int{6, 7, 8, 9},
				AvgRainfallMm: 900, TemperatureRange: [2]int{25, 38}, HumidityAvg: 75,
				SuitableCrops: []string{"rice", "sugarcane", "cotton", "millets"},
				Description:   "Good monsoon coverage, fertile plains",
			},
			"rabi": {
				Name: "Winter Season", Months: []int{11, 12, 1, 2, 3},
				AvgRainfallMm: 120, TemperatureRange: [2]int{8, 25}, HumidityAvg: 60,
				SuitableCrops: []string{"wheat", "barley", "peas", "mustard"},
				Description:   "Major wheat producing region",
			},
		},
	},
	"Karnataka": {
		Region: "South India",
		Patterns: map[string]SeasonPattern{
			"kharif": {
				Name: "Southwest Monsoon", Months: []int{6, 7, 8, 9},
				AvgRainfallMm: 800, TemperatureRange: [2]int{22, 32}, HumidityAvg: 75,
				SuitableCrops: []string{"rice", "ragi", "maize", "cotton"},
				Description:   "Moderate monsoon, varied topography",
			},
			"rabi": {
				Name: "Northeast Monsoon", Months: []int{10, 11, 12},
				AvgRainfallMm: 400, TemperatureRange: [2]int{18, 28}, HumidityAvg: 65,
				SuitableCrops: []string{"ragi", "pulses", "oilseeds"},
				Description:   "Post-monsoon crops, winter rain",
			},
		},
	},
	"Tamil Nadu": {
		Region: "South India",
		Patterns: map[string]SeasonPattern{
			"kharif": {
				Name: "Southwest Monsoon", Months: []int{6, 7, 8, 9},
				AvgRainfallMm: 400, TemperatureRange: [2]int{26, 35}, HumidityAvg: 70,
				SuitableCrops: []string{"rice", "cotton", "millets"},
				Description:   "Less rain from southwest monsoon",
			},
			"rabi": {
				Name: "Northeast Monsoon", Months: []int{10, 11, 12, 1},
				AvgRainfallMm: 900, TemperatureRange: [2]int{22, 30}, HumidityAvg: 75,
				SuitableCrops: []string{"rice", "pulses", "sugarcane"},
				Description:   "Main rainy season, northeast monsoon critical",
			},
		},
	},
	"West Bengal": {
		Region: "East India",
		Patterns: map[string]SeasonPattern{
			"kharif": {
				Name: "Monsoon Season", Months: []int{6, 7, 8, 9, 10},
				AvgRainfallMm: 1500, TemperatureRange: [2]int{25, 35}, HumidityAvg: 85,
				SuitableCrops: []string{"rice", "jute", "sugarcane"},
				Description:   "Heavy monsoon, high humidity, rice bowl",
			},
			"rabi": {
				Name: "Winter Season", Months: []int{11, 12, 1, 2},
				AvgRainfallMm: 100, TemperatureRange: [2]int{12, 28}, HumidityAvg: 70,
				SuitableCrops: []string{"wheat", "mustard", "vegetables", "pulses"},
				Description:   "Mild winter, vegetable production",
			},
		},
	},
}

type CropProfile struct {
	Name                  string            `json:"name"`
	Varieties             []string          `json:"varieties"`
	GrowingSeason         string            `json:"growing_season"`
	DurationDays          int               `json:"duration_days"`
	WaterRequirement      string            `json:"water_requirement"`
	SoilPreference        []string          `json:"soil_preference"`
	TemperatureRange      [2]int            `json:"temperature_range"`
	RainfallRequirementMm float64           `json:"rainfall_requirement_mm"`
	NutrientsNeeded       map[string]string `json:"nutrients_needed"`
	Special               string            `json:"special,omitempty"`
}

var cropDatabase = map[string]CropProfile{
	"rice": {
		Name: "Rice", Varieties: []string{"Basmati", "IR64", "Swarna", "Pusa"},
		GrowingSeason: "kharif", DurationDays: 120, WaterRequirement: "high",
		SoilPreference: []string{"clay", "loam"}, TemperatureRange: [2]int{20, 35},
		RainfallRequirementMm: 800,
		NutrientsNeeded:       map[string]string{"N": "high", "P": "medium", "K": "medium"},
	},
	"wheat": {
		Name: "Wheat", Varieties: []string{"HD2967", "PBW343", "Lok1"},
		GrowingSeason: "rabi", DurationDays: 120, WaterRequirement: "medium",
		SoilPreference: []string{"loam", "clay-loam"}, TemperatureRange: [2]int{10, 25},
		RainfallRequirementMm: 300,
		NutrientsNeeded:       map[string]string{"N": "high", "P": "high", "K": "medium"},
	},
	"cotton": {
		Name: "Cotton", Varieties: []string{"Bt Cotton", "Hybrid varieties"},
		GrowingSeason: "kharif", DurationDays: 150, WaterRequirement: "medium",
		SoilPreference: []string{"black soil", "loam"}, TemperatureRange: [2]int{21, 35},
		RainfallRequirementMm: 600,
		NutrientsNeeded:       map[string]string{"N": "high", "P": "medium", "K": "high"},
	},
	"sugarcane": {
		Name: "Sugarcane", Varieties: []string{"Co86032", "CoJ64"},
		GrowingSeason: "year-round", DurationDays: 300, WaterRequirement: "very high",
		SoilPreference: []string{"loam", "clay-loam"}, TemperatureRange: [2]int{20, 35},
		RainfallRequirementMm: 1500,
		NutrientsNeeded:       map[string]string{"N": "very high", "P": "high", "K": "high"},
	},
	"moong_dal": {
		Name: "Moong Dal (Green Gram)", Varieties: []string{"Pusa Vishal", "SML668"},
		GrowingSeason: "kharif", DurationDays: 60, WaterRequirement: "low",
		SoilPreference: []string{"loam", "sandy-loam"}, TemperatureRange: [2]int{25, 35},
		RainfallRequirementMm: 400,
		NutrientsNeeded:       map[string]string{"N": "low", "P": "medium", "K": "medium"},
		Special:               "Nitrogen-fixing crop, improves soil",
	},
	"chickpea": {
		Name: "Chickpea (Chana)", Varieties: []string{"Pusa256", "KAK2"},
		GrowingSeason: "rabi", DurationDays: 100, WaterRequirement: "low",
		SoilPreference: []string{"loam", "clay-loam"}, TemperatureRange: [2]int{10, 30},
		RainfallRequirementMm: 300,
		NutrientsNeeded:       map[string]string{"N": "low", "P": "medium", "K": "medium"},
		Special:               "Nitrogen-fixing crop",
	},
	"maize": {
		Name: "Maize (Corn)", Varieties: []string{"Hybrid varieties"},
		GrowingSeason: "kharif", DurationDays: 90, WaterRequirement: "medium",
		SoilPreference: []string{"loam", "sandy-loam"}, TemperatureRange: [2]int{20, 30},
		RainfallRequirementMm: 500,
		NutrientsNeeded:       map[string]string{"N": "high", "P": "medium", "K": "medium"},
	},
}

var soilCompatibility = map[string][]string{
	"clay":  {"rice", "wheat", "cotton"},
	"loam":  {"rice", "wheat", "maize", "moong_dal"},
	"sandy": {"moong_dal"},
	"black": {"cotton", "chickpea"},
}

// PatternForLocation matches a state name inside the location string. Punjab
// serves as the generic North India fallback.
func PatternForLocation(location string) RegionPattern {
	upper := strings.ToUpper(location)
	for state, pattern := range seasonalPatterns {
		if strings.Contains(upper, strings.ToUpper(state)) {
			return pattern
		}
	}
	return seasonalPatterns["Punjab"]
}

func CurrentSeason(location string, month int) (SeasonPattern, bool) {
	pattern := PatternForLocation(location)
	for seasonType, season := range pattern.Patterns {
		for _, m := range season.Months {
			if m == month {
				season.SeasonType = seasonType
				return season, true
			}
		}
	}
	return SeasonPattern{}, false
}

type MonthPrediction struct {
	Month              int      `json:"month"`
	Season             string   `json:"season"`
	ExpectedRainfallMm float64  `json:"expected_rainfall_mm"`
	TemperatureRange   [2]int   `json:"temperature_range"`
	Humidity           int      `json:"humidity"`
	SuitableCrops      []string `json:"suitable_crops"`
}

type SixMonthOutlook struct {
	Location    string            `json:"location"`
	Region      string            `json:"region"`
	Predictions []MonthPrediction `json:"predictions"`
	Note        string            `json:"note"`
}

// SixMonthWeather projects the seasonal pattern forward from the current
// month.
func SixMonthWeather(location string, currentMonth int) SixMonthOutlook {
	pattern := PatternForLocation(location)

	predictions := make([]MonthPrediction, 0, 6)
	for i := 0; i < 6; i++ {
		month := ((currentMonth+i-1)%12 + 12) % 12 // keep in 0..11
		month++
		season, ok := CurrentSeason(location, month)
		if !ok {
			continue
		}
		predictions = append(predictions, MonthPrediction{
			Month:              month,
			Season:             season.Name,
			ExpectedRainfallMm: round2(season.AvgRainfallMm / float64(len(season.Months))),
			TemperatureRange:   season.TemperatureRange,
			Humidity:           season.HumidityAvg,
			SuitableCrops:      season.SuitableCrops,
		})
	}

	return SixMonthOutlook{
		Location:    location,
		Region:      pattern.Region,
		Predictions: predictions,
		Note:        "Based on historical seasonal patterns",
	}
}

type SeasonalReport struct {
	Location      string          `json:"location"`
	CurrentSeason *SeasonPattern  `json:"current_season"`
	NextSixMonths SixMonthOutlook `json:"next_6_months_forecast"`
}

func SeasonalPatternsReport(location string, now time.Time) SeasonalReport {
	month := int(now.Month())
	report := SeasonalReport{
		Location:      location,
		NextSixMonths: SixMonthWeather(location, month),
	}
	if season, ok := CurrentSeason(location, month); ok {
		report.CurrentSeason = &season
	}
	return report
}

type SoilReport struct {
	SoilType      string   `json:"soil_type"`
	SuitableCrops []string `json:"suitable_crops"`
	Summary       string   `json:"summary"`
}

// SoilSuitability filters crop options down to those compatible with the
// given soil. Unknown soils default to the staple pair.
func SoilSuitability(soilType string, cropOptions []string) SoilReport {
	if len(cropOptions) == 0 {
		for crop := range cropDatabase {
			cropOptions = append(cropOptions, crop)
		}
	}

	suitable, ok := soilCompatibility[strings.ToLower(soilType)]
	if !ok {
		suitable = []string{"rice", "wheat"}
	}

	var matches []string
	for _, c := range cropOptions {
		for _, s := range suitable {
			if c == s {
				matches = append(matches, c)
				break
			}
		}
	}

	return SoilReport{
		SoilType:      soilType,
		SuitableCrops: matches,
		Summary:       fmt.Sprintf("%s soil is suitable for: %s", soilType, strings.Join(suitable, ", ")),
	}
}

func CropProfileFor(crop string) (CropProfile, bool) {
	p, ok := cropDatabase[normalizeCrop(crop)]
	return p, ok
}

func registerSeasonalCapabilities(r *Registry) {
	r.Register(Capability{
		Name:        "get_seasonal_patterns",
		Description: "Get seasonal weather patterns for crop planning",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"location": {"type": "string", "description": "State or district name"},
				"crop": {"type": "string", "description": "Optional crop of interest"}
			},
			"required": ["location"]
		}`),
		Handler: func(_ context.Context, args json.RawMessage) (any, error) {
			var in struct {
				Location string `json:"location"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, err
			}
			return SeasonalPatternsReport(in.Location, time.Now()), nil
		},
	})

	r.Register(Capability{
		Name:        "analyze_soil_suitability",
		Description: "Analyze soil suitability for different crops",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"soil_type": {"type": "string", "description": "Soil type (clay, loam, sandy, black)"},
				"previous_crop": {"type": "string", "description": "Crop grown last season"},
				"crop_options": {"type": "array", "items": {"type": "string"}, "description": "Crops to evaluate"}
			},
			"required": ["soil_type"]
		}`),
		Handler: func(_ context.Context, args json.RawMessage) (any, error) {
			var in struct {
				SoilType    string   `json:"soil_type"`
				CropOptions []string `json:"crop_options"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, err
			}
			return SoilSuitability(in.SoilType, in.CropOptions), nil
		},
	})
}
