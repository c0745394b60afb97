package farmtools

import (
	"context"
	"encoding/json"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"
)

// Prices are in INR per quintal (sugarcane per ton). The snapshot mirrors
// typical mandi rates; seasonal factors model harvest supply swings.
type cropPrice struct {
	Base       float64
	Volatility float64
	PeakMonths []time.Month // harvest months, more supply, lower price
	LowMonths  []time.Month // lean months, less supply, higher price
}

var marketPrices = map[string]cropPrice{
	"rice":      {2500, 0.15, []time.Month{10, 11, 12}, []time.Month{6, 7, 8}},
	"wheat":     {2100, 0.12, []time.Month{4, 5}, []time.Month{11, 12}},
	"cotton":    {6200, 0.20, []time.Month{11, 12, 1}, []time.Month{6, 7}},
	"moong_dal": {7000, 0.18, []time.Month{3, 4, 5}, []time.Month{10, 11}},
	"sugarcane": {350, 0.10, []time.Month{12, 1, 2}, []time.Month{7, 8}},
	"tomato":    {1500, 0.35, []time.Month{12, 1, 2}, []time.Month{6, 7, 8}},
	"potato":    {800, 0.25, []time.Month{3, 4}, []time.Month{10, 11}},
	"onion":     {1200, 0.30, []time.Month{11, 12}, []time.Month{6, 7}},
	"maize":     {1800, 0.15, []time.Month{10, 11}, []time.Month{5, 6}},
	"bajra":     {2000, 0.14, []time.Month{10, 11}, []time.Month{6, 7}},
}

type marketplace struct {
	Name          string
	DistanceKm    float64
	CostPerKm     float64
	PriceDiscount float64
}

var marketplacesByRegion = map[string][]marketplace{
	"punjab": {
		{"Ludhiana Mandi", 15, 3, 0},
		{"Jalandhar Grain Market", 30, 3, 0},
		{"Amritsar Agricultural Market", 45, 3, 0},
		{"Local Trader (Village)", 0, 0, 0.10},
	},
	"maharashtra": {
		{"Pune Mandi", 20, 4, 0},
		{"Mumbai APMC", 80, 4, 0},
		{"Nashik Market", 40, 4, 0},
		{"Local Trader", 0, 0, 0.12},
	},
	"default": {
		{"District Mandi", 15, 3, 0},
		{"Regional Market", 35, 3, 0},
		{"Local Trader", 0, 0, 0.10},
	},
}

type PriceQuote struct {
	Crop            string  `json:"crop"`
	PricePerQuintal float64 `json:"price_per_quintal"`
	BasePrice       float64 `json:"base_price,omitempty"`
	SeasonalFactor  float64 `json:"seasonal_factor,omitempty"`
	Currency        string  `json:"currency"`
	Unit            string  `json:"unit"`
	Date            string  `json:"date"`
	Location        string  `json:"location"`
	Trend           string  `json:"trend"`
	Note            string  `json:"note,omitempty"`
}

func normalizeCrop(crop string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(crop)), " ", "_")
}

func containsMonth(months []time.Month, m time.Month) bool {
	for _, x := range months {
		if x == m {
			return true
		}
	}
	return false
}

// CurrentPrice quotes one crop with seasonal, daily and regional
// adjustments. Unknown crops get a flat generic quote.
func CurrentPrice(crop, location string, now time.Time) PriceQuote {
	name := normalizeCrop(crop)
	data, ok := marketPrices[name]
	if !ok {
		return PriceQuote{
			Crop:            name,
			PricePerQuintal: 2000,
			Currency:        "INR",
			Unit:            "quintal",
			Date:            now.Format(time.RFC3339),
			Location:        locationOrDefault(location),
			Trend:           "stable",
			Note:            "Generic price - crop not in database",
		}
	}

	seasonal := 1.0
	switch {
	case containsMonth(data.PeakMonths, now.Month()):
		seasonal = 1 - data.Volatility*0.5
	case containsMonth(data.LowMonths, now.Month()):
		seasonal = 1 + data.Volatility*0.5
	}

	daily := 1 + (rand.Float64()*0.10 - 0.05)

	regional := 1.0
	loc := strings.ToLower(location)
	switch {
	case strings.Contains(loc, "punjab") || strings.Contains(loc, "haryana"):
		regional = 1.05
	case strings.Contains(loc, "maharashtra") || strings.Contains(loc, "karnataka"):
		regional = 0.95
	}

	trend := "stable"
	if seasonal > 1.05 {
		trend = "increasing"
	} else if seasonal < 0.95 {
		trend = "decreasing"
	}

	return PriceQuote{
		Crop:            name,
		PricePerQuintal: round2(data.Base * seasonal * daily * regional),
		BasePrice:       data.Base,
		SeasonalFactor:  round2(seasonal),
		Currency:        "INR",
		Unit:            "quintal",
		Date:            now.Format(time.RFC3339),
		Location:        locationOrDefault(location),
		Trend:           trend,
	}
}

func locationOrDefault(location string) string {
	if location == "" {
		return "National Average"
	}
	return location
}

func Prices(crops []string, location string, now time.Time) []PriceQuote {
	quotes := make([]PriceQuote, 0, len(crops))
	for _, c := range crops {
		quotes = append(quotes, CurrentPrice(c, location, now))
	}
	return quotes
}

type MarketplaceOption struct {
	Name                    string  `json:"marketplace_name"`
	DistanceKm              float64 `json:"distance_km"`
	MarketPricePerQuintal   float64 `json:"market_price_per_quintal"`
	TransportCostPerQuintal float64 `json:"transport_cost_per_quintal"`
	NetPricePerQuintal      float64 `json:"net_price_per_quintal"`
	TotalEarnings           float64 `json:"total_earnings"`
	PaymentTerms            string  `json:"payment_terms"`
	RecommendationScore     float64 `json:"recommendation_score"`
}

// FindMarketplaces ranks nearby selling options by net price after
// transport. Local traders pay immediately but at a discount.
func FindMarketplaces(crop, location string, quantityQuintals float64, now time.Time) []MarketplaceOption {
	loc := strings.ToLower(location)
	region := "default"
	switch {
	case strings.Contains(loc, "punjab") || strings.Contains(loc, "ludhiana") || strings.Contains(loc, "jalandhar"):
		region = "punjab"
	case strings.Contains(loc, "maharashtra") || strings.Contains(loc, "pune") || strings.Contains(loc, "mumbai"):
		region = "maharashtra"
	}

	base := CurrentPrice(crop, location, now).PricePerQuintal

	options := make([]MarketplaceOption, 0, len(marketplacesByRegion[region]))
	for _, m := range marketplacesByRegion[region] {
		var transportPerQuintal float64
		if quantityQuintals > 0 {
			transportPerQuintal = m.DistanceKm * m.CostPerKm
		}

		price := base * (1 - m.PriceDiscount)
		price *= 1 + (rand.Float64()*0.04 - 0.02)

		net := price - transportPerQuintal
		terms := "Within 2-3 days"
		if strings.Contains(m.Name, "Trader") {
			terms = "Immediate"
		}

		options = append(options, MarketplaceOption{
			Name:                    m.Name,
			DistanceKm:              m.DistanceKm,
			MarketPricePerQuintal:   round2(price),
			TransportCostPerQuintal: round2(transportPerQuintal),
			NetPricePerQuintal:      round2(net),
			TotalEarnings:           round2(net * quantityQuintals),
			PaymentTerms:            terms,
			RecommendationScore:     round2(net / base),
		})
	}

	sort.Slice(options, func(i, j int) bool {
		return options[i].NetPricePerQuintal > options[j].NetPricePerQuintal
	})
	return options
}

type PriceForecastEntry struct {
	Month           string  `json:"month"`
	ForecastedPrice float64 `json:"forecasted_price"`
	Trend           string  `json:"trend"`
	Confidence      string  `json:"confidence"`
}

// PriceForecast projects prices for upcoming months from the seasonal
// pattern alone. Unknown crops get an empty forecast.
func PriceForecast(crop string, monthsAhead int, now time.Time) []PriceForecastEntry {
	data, ok := marketPrices[normalizeCrop(crop)]
	if !ok {
		return nil
	}
	if monthsAhead <= 0 {
		monthsAhead = 3
	}

	forecasts := make([]PriceForecastEntry, 0, monthsAhead)
	for i := 1; i <= monthsAhead; i++ {
		future := now.AddDate(0, 0, 30*i)

		seasonal, trend := 1.0, "stable"
		switch {
		case containsMonth(data.PeakMonths, future.Month()):
			seasonal, trend = 1-data.Volatility*0.5, "decreasing"
		case containsMonth(data.LowMonths, future.Month()):
			seasonal, trend = 1+data.Volatility*0.5, "increasing"
		}

		forecasts = append(forecasts, PriceForecastEntry{
			Month:           future.Format("January 2006"),
			ForecastedPrice: round2(data.Base * seasonal),
			Trend:           trend,
			Confidence:      "medium",
		})
	}
	return forecasts
}

type ProfitInput struct {
	YieldQuintals          float64 `json:"yield_quintals"`
	SellingPricePerQuintal float64 `json:"selling_price_per_quintal"`
	SeedCost               float64 `json:"seed_cost"`
	FertilizerCost         float64 `json:"fertilizer_cost"`
	LaborCost              float64 `json:"labor_cost"`
	IrrigationCost         float64 `json:"irrigation_cost"`
	OtherCosts             float64 `json:"other_costs"`
}

type ProfitReport struct {
	TotalRevenue        float64            `json:"total_revenue"`
	TotalCosts          float64            `json:"total_costs"`
	NetProfit           float64            `json:"net_profit"`
	ProfitMarginPercent float64            `json:"profit_margin_percent"`
	ROIPercent          float64            `json:"roi_percent"`
	CostBreakdown       map[string]float64 `json:"cost_breakdown"`
	Profitability       string             `json:"profitability"`
}

func CalculateProfit(in ProfitInput) ProfitReport {
	revenue := in.YieldQuintals * in.SellingPricePerQuintal
	costs := in.SeedCost + in.FertilizerCost + in.LaborCost + in.IrrigationCost + in.OtherCosts
	profit := revenue - costs

	var margin, roi float64
	if revenue > 0 {
		margin = profit / revenue * 100
	}
	if costs > 0 {
		roi = profit / costs * 100
	}

	profitability := "Low"
	if margin > 30 {
		profitability = "High"
	} else if margin > 15 {
		profitability = "Medium"
	}

	return ProfitReport{
		TotalRevenue:        round2(revenue),
		TotalCosts:          round2(costs),
		NetProfit:           round2(profit),
		ProfitMarginPercent: round2(margin),
		ROIPercent:          round2(roi),
		CostBreakdown: map[string]float64{
			"seed":       in.SeedCost,
			"fertilizer": in.FertilizerCost,
			"labor":      in.LaborCost,
			"irrigation": in.IrrigationCost,
			"other":      in.OtherCosts,
		},
		Profitability: profitability,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func registerMarketCapabilities(r *Registry) {
	r.Register(Capability{
		Name:        "get_current_market_price",
		Description: "Get current market price for a specific crop with seasonal adjustments",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"crop": {"type": "string", "description": "Name of the crop (e.g., 'rice', 'wheat')"},
				"location": {"type": "string", "description": "Optional location for regional pricing"}
			},
			"required": ["crop"]
		}`),
		Handler: func(_ context.Context, args json.RawMessage) (any, error) {
			var in struct {
				Crop     string `json:"crop"`
				Location string `json:"location"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, err
			}
			return CurrentPrice(in.Crop, in.Location, time.Now()), nil
		},
	})

	r.Register(Capability{
		Name:        "get_market_prices",
		Description: "Get market prices for multiple crops at once",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"crops": {"type": "array", "items": {"type": "string"}, "description": "List of crop names"},
				"location": {"type": "string", "description": "Optional location"}
			},
			"required": ["crops"]
		}`),
		Handler: func(_ context.Context, args json.RawMessage) (any, error) {
			var in struct {
				Crops    []string `json:"crops"`
				Location string   `json:"location"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, err
			}
			return Prices(in.Crops, in.Location, time.Now()), nil
		},
	})

	r.Register(Capability{
		Name:        "find_marketplaces",
		Description: "Find best marketplaces to sell crops with transport cost analysis",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"crop": {"type": "string", "description": "Crop to sell"},
				"location": {"type": "string", "description": "Farmer's location"},
				"quantity_quintals": {"type": "number", "description": "Quantity to sell in quintals"}
			},
			"required": ["crop", "location", "quantity_quintals"]
		}`),
		Handler: func(_ context.Context, args json.RawMessage) (any, error) {
			var in struct {
				Crop             string  `json:"crop"`
				Location         string  `json:"location"`
				QuantityQuintals float64 `json:"quantity_quintals"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, err
			}
			return FindMarketplaces(in.Crop, in.Location, in.QuantityQuintals, time.Now()), nil
		},
	})

	r.Register(Capability{
		Name:        "get_price_forecast",
		Description: "Get price forecast for upcoming months",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"crop": {"type": "string", "description": "Crop name"},
				"months_ahead": {"type": "integer", "description": "Number of months to forecast (default 3)"}
			},
			"required": ["crop"]
		}`),
		Handler: func(_ context.Context, args json.RawMessage) (any, error) {
			var in struct {
				Crop        string `json:"crop"`
				MonthsAhead int    `json:"months_ahead"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, err
			}
			return PriceForecast(in.Crop, in.MonthsAhead, time.Now()), nil
		},
	})

	r.Register(Capability{
		Name:        "calculate_profit",
		Description: "Calculate profit/loss and ROI for a crop season",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"yield_quintals": {"type": "number"},
				"selling_price_per_quintal": {"type": "number"},
				"seed_cost": {"type": "number"},
				"fertilizer_cost": {"type": "number"},
				"labor_cost": {"type": "number"},
				"irrigation_cost": {"type": "number"},
				"other_costs": {"type": "number"}
			},
			"required": ["yield_quintals", "selling_price_per_quintal"]
		}`),
		Handler: func(_ context.Context, args json.RawMessage) (any, error) {
			var in ProfitInput
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, err
			}
			return CalculateProfit(in), nil
		},
	})
}
