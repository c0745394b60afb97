package farmtools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"sort"
	"time"
)

const openWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// WeatherClient fetches current conditions and the 5-day forecast from
// OpenWeatherMap. Without an API key it serves plausible offline data so the
// advisors keep working in development.
type WeatherClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewWeatherClient(apiKey string) *WeatherClient {
	return &WeatherClient{
		apiKey:  apiKey,
		baseURL: openWeatherBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type CurrentWeather struct {
	Location    string  `json:"location"`
	Country     string  `json:"country"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	Weather     string  `json:"weather"`
	Description string  `json:"description"`
	WindSpeed   float64 `json:"wind_speed"`
	Clouds      float64 `json:"clouds"`
	Timestamp   string  `json:"timestamp"`
}

type ForecastPoint struct {
	Datetime        string  `json:"datetime"`
	Temperature     float64 `json:"temperature"`
	FeelsLike       float64 `json:"feels_like"`
	Humidity        float64 `json:"humidity"`
	Weather         string  `json:"weather"`
	Description     string  `json:"description"`
	WindSpeed       float64 `json:"wind_speed"`
	RainProbability float64 `json:"rain_probability"`
	RainVolume      float64 `json:"rain_volume"`
}

type DailySummary struct {
	Date            string  `json:"date"`
	TempMin         float64 `json:"temp_min"`
	TempMax         float64 `json:"temp_max"`
	TempAvg         float64 `json:"temp_avg"`
	HumidityAvg     float64 `json:"humidity_avg"`
	RainProbability float64 `json:"rain_probability"`
	TotalRainMm     float64 `json:"total_rain_mm"`
	DominantWeather string  `json:"dominant_weather"`
}

type Forecast struct {
	Location       string          `json:"location"`
	Country        string          `json:"country"`
	Forecast3H     []ForecastPoint `json:"forecast_3hourly"`
	DailySummary   []DailySummary  `json:"daily_summary"`
	TotalForecasts int             `json:"total_forecasts"`
}

type AgriculturalInsights struct {
	TotalExpectedRainfallMm float64 `json:"total_expected_rainfall_mm"`
	RainyDaysCount          int     `json:"rainy_days_count"`
	AverageTemperature      float64 `json:"average_temperature"`
	TemperatureRange        struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"temperature_range"`
	AverageHumidity        float64 `json:"average_humidity"`
	IsMonsoonLike          bool    `json:"is_monsoon_like"`
	SuitableForSowing      bool    `json:"suitable_for_sowing"`
	IrrigationNeeded       bool    `json:"irrigation_needed"`
	HighTemperatureWarning bool    `json:"high_temperature_warning"`
	FrostWarning           bool    `json:"frost_warning"`
}

type WeatherAnalysis struct {
	Current  CurrentWeather       `json:"current_weather"`
	Forecast Forecast             `json:"forecast_5day"`
	Insights AgriculturalInsights `json:"agricultural_insights"`
}

// Analysis combines current weather, the forecast and the derived
// agricultural insights for a location.
func (w *WeatherClient) Analysis(ctx context.Context, location string) (WeatherAnalysis, error) {
	current, err := w.Current(ctx, location)
	if err != nil {
		return WeatherAnalysis{}, err
	}
	forecast, err := w.FiveDayForecast(ctx, location)
	if err != nil {
		return WeatherAnalysis{}, err
	}

	return WeatherAnalysis{
		Current:  current,
		Forecast: forecast,
		Insights: deriveInsights(current, forecast),
	}, nil
}

func (w *WeatherClient) Current(ctx context.Context, location string) (CurrentWeather, error) {
	if w.apiKey == "" {
		return mockCurrentWeather(location), nil
	}

	var raw struct {
		Name string `json:"name"`
		Sys  struct {
			Country string `json:"country"`
		} `json:"sys"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  float64 `json:"humidity"`
			Pressure  float64 `json:"pressure"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Clouds struct {
			All float64 `json:"all"`
		} `json:"clouds"`
		Dt int64 `json:"dt"`
	}
	if err := w.get(ctx, "/weather", location, &raw); err != nil {
		return CurrentWeather{}, err
	}

	cw := CurrentWeather{
		Location:    raw.Name,
		Country:     raw.Sys.Country,
		Temperature: raw.Main.Temp,
		FeelsLike:   raw.Main.FeelsLike,
		Humidity:    raw.Main.Humidity,
		Pressure:    raw.Main.Pressure,
		WindSpeed:   raw.Wind.Speed,
		Clouds:      raw.Clouds.All,
		Timestamp:   time.Unix(raw.Dt, 0).UTC().Format(time.RFC3339),
	}
	if len(raw.Weather) > 0 {
		cw.Weather = raw.Weather[0].Main
		cw.Description = raw.Weather[0].Description
	}
	return cw, nil
}

func (w *WeatherClient) FiveDayForecast(ctx context.Context, location string) (Forecast, error) {
	if w.apiKey == "" {
		return mockForecast(location), nil
	}

	var raw struct {
		City struct {
			Name    string `json:"name"`
			Country string `json:"country"`
		} `json:"city"`
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp      float64 `json:"temp"`
				FeelsLike float64 `json:"feels_like"`
				Humidity  float64 `json:"humidity"`
			} `json:"main"`
			Weather []struct {
				Main        string `json:"main"`
				Description string `json:"description"`
			} `json:"weather"`
			Wind struct {
				Speed float64 `json:"speed"`
			} `json:"wind"`
			Pop  float64 `json:"pop"`
			Rain struct {
				ThreeHours float64 `json:"3h"`
			} `json:"rain"`
		} `json:"list"`
	}
	if err := w.get(ctx, "/forecast", location, &raw); err != nil {
		return Forecast{}, err
	}

	points := make([]ForecastPoint, 0, len(raw.List))
	for _, item := range raw.List {
		p := ForecastPoint{
			Datetime:        time.Unix(item.Dt, 0).UTC().Format(time.RFC3339),
			Temperature:     item.Main.Temp,
			FeelsLike:       item.Main.FeelsLike,
			Humidity:        item.Main.Humidity,
			WindSpeed:       item.Wind.Speed,
			RainProbability: item.Pop * 100,
			RainVolume:      item.Rain.ThreeHours,
		}
		if len(item.Weather) > 0 {
			p.Weather = item.Weather[0].Main
			p.Description = item.Weather[0].Description
		}
		points = append(points, p)
	}

	return Forecast{
		Location:       raw.City.Name,
		Country:        raw.City.Country,
		Forecast3H:     points,
		DailySummary:   summarizeDaily(points),
		TotalForecasts: len(points),
	}, nil
}

func (w *WeatherClient) get(ctx context.Context, path, location string, out any) error {
	q := url.Values{}
	q.Set("q", location)
	q.Set("appid", w.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather API returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// summarizeDaily folds 3-hourly points into per-day aggregates, ordered by
// date.
func summarizeDaily(points []ForecastPoint) []DailySummary {
	type bucket struct {
		temps, humidity, rainProb, rainVol []float64
		conditions                         map[string]int
	}
	days := make(map[string]*bucket)
	for _, p := range points {
		date := p.Datetime
		if len(date) >= 10 {
			date = date[:10]
		}
		b, ok := days[date]
		if !ok {
			b = &bucket{conditions: make(map[string]int)}
			days[date] = b
		}
		b.temps = append(b.temps, p.Temperature)
		b.humidity = append(b.humidity, p.Humidity)
		b.rainProb = append(b.rainProb, p.RainProbability)
		b.rainVol = append(b.rainVol, p.RainVolume)
		b.conditions[p.Weather]++
	}

	dates := make([]string, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	summaries := make([]DailySummary, 0, len(dates))
	for _, date := range dates {
		b := days[date]
		s := DailySummary{
			Date:            date,
			TempMin:         minOf(b.temps),
			TempMax:         maxOf(b.temps),
			TempAvg:         avgOf(b.temps),
			HumidityAvg:     avgOf(b.humidity),
			RainProbability: maxOf(b.rainProb),
			TotalRainMm:     sumOf(b.rainVol),
		}
		best := -1
		for cond, n := range b.conditions {
			if n > best {
				best, s.DominantWeather = n, cond
			}
		}
		summaries = append(summaries, s)
	}
	return summaries
}

func deriveInsights(current CurrentWeather, forecast Forecast) AgriculturalInsights {
	daily := forecast.DailySummary
	var insights AgriculturalInsights
	if len(daily) == 0 {
		return insights
	}

	var totalRain, tempSum, humiditySum float64
	rainyDays := 0
	maxTemp, minTemp := daily[0].TempMax, daily[0].TempMin
	for _, d := range daily {
		totalRain += d.TotalRainMm
		tempSum += d.TempAvg
		humiditySum += d.HumidityAvg
		if d.RainProbability > 50 {
			rainyDays++
		}
		if d.TempMax > maxTemp {
			maxTemp = d.TempMax
		}
		if d.TempMin < minTemp {
			minTemp = d.TempMin
		}
	}

	insights.TotalExpectedRainfallMm = round2(totalRain)
	insights.RainyDaysCount = rainyDays
	insights.AverageTemperature = round1(tempSum / float64(len(daily)))
	insights.TemperatureRange.Min = round1(minTemp)
	insights.TemperatureRange.Max = round1(maxTemp)
	insights.AverageHumidity = round1(humiditySum / float64(len(daily)))
	insights.IsMonsoonLike = rainyDays >= 3 && totalRain > 20
	insights.SuitableForSowing = current.Temperature > 15 && rainyDays > 0
	insights.IrrigationNeeded = totalRain < 10
	insights.HighTemperatureWarning = maxTemp > 38
	insights.FrostWarning = minTemp < 5
	return insights
}

func mockCurrentWeather(location string) CurrentWeather {
	if location == "" {
		location = "Ludhiana"
	}
	return CurrentWeather{
		Location:    location,
		Country:     "IN",
		Temperature: 28.5,
		FeelsLike:   30.2,
		Humidity:    65,
		Pressure:    1013,
		Weather:     "Clouds",
		Description: "scattered clouds",
		WindSpeed:   3.5,
		Clouds:      40,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

func mockForecast(location string) Forecast {
	if location == "" {
		location = "Ludhiana"
	}

	conditions := []string{"Clear", "Clouds", "Rain"}
	base := time.Now().UTC()
	points := make([]ForecastPoint, 0, 40)
	for i := 0; i < 40; i++ {
		points = append(points, ForecastPoint{
			Datetime:        base.Add(time.Duration(3*i) * time.Hour).Format(time.RFC3339),
			Temperature:     22 + rand.Float64()*13,
			FeelsLike:       23 + rand.Float64()*13,
			Humidity:        50 + rand.Float64()*30,
			Weather:         conditions[rand.Intn(len(conditions))],
			Description:     "offline forecast",
			WindSpeed:       2 + rand.Float64()*6,
			RainProbability: rand.Float64() * 80,
			RainVolume:      rand.Float64() * 5,
		})
	}

	return Forecast{
		Location:       location,
		Country:        "IN",
		Forecast3H:     points,
		DailySummary:   summarizeDaily(points),
		TotalForecasts: len(points),
	}
}

func minOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func sumOf(vs []float64) float64 {
	var s float64
	for _, v := range vs {
		s += v
	}
	return s
}

func avgOf(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	return sumOf(vs) / float64(len(vs))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func registerWeatherCapabilities(r *Registry, weather *WeatherClient) {
	r.Register(Capability{
		Name:        "get_weather_forecast",
		Description: "Get weather forecast and analysis for a location",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"location": {"type": "string", "description": "City or district name"}
			},
			"required": ["location"]
		}`),
		Handler: func(ctx context.Context, args json.RawMessage) (any, error) {
			var in struct {
				Location string `json:"location"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, err
			}
			return weather.Analysis(ctx, in.Location)
		},
	})
}
