package farmtools

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Greenhouse growth parameters per crop. Rates are cm/day under optimal
// conditions; light in lux, water in liters/day.
type greenhouseCrop struct {
	OptimalTemp         [2]float64
	OptimalHumidity     [2]float64
	OptimalMoisture     [2]float64
	OptimalLight        [2]float64
	GrowthRate          float64
	MaxHeight           float64
	DaysToHarvest       int
	WaterNeeds          float64
	FertilizerFrequency int
}

var greenhouseCrops = map[string]greenhouseCrop{
	"tomato": {
		OptimalTemp: [2]float64{20, 25}, OptimalHumidity: [2]float64{60, 80},
		OptimalMoisture: [2]float64{60, 75}, OptimalLight: [2]float64{40000, 60000},
		GrowthRate: 2.5, MaxHeight: 180, DaysToHarvest: 75, WaterNeeds: 2.5, FertilizerFrequency: 7,
	},
	"moong_dal": {
		OptimalTemp: [2]float64{25, 30}, OptimalHumidity: [2]float64{60, 70},
		OptimalMoisture: [2]float64{50, 65}, OptimalLight: [2]float64{30000, 50000},
		GrowthRate: 1.8, MaxHeight: 50, DaysToHarvest: 60, WaterNeeds: 1.5, FertilizerFrequency: 10,
	},
	"lettuce": {
		OptimalTemp: [2]float64{15, 20}, OptimalHumidity: [2]float64{50, 70},
		OptimalMoisture: [2]float64{65, 80}, OptimalLight: [2]float64{20000, 35000},
		GrowthRate: 1.2, MaxHeight: 25, DaysToHarvest: 45, WaterNeeds: 1.0, FertilizerFrequency: 14,
	},
	"cucumber": {
		OptimalTemp: [2]float64{22, 28}, OptimalHumidity: [2]float64{70, 85},
		OptimalMoisture: [2]float64{70, 85}, OptimalLight: [2]float64{45000, 65000},
		GrowthRate: 3.0, MaxHeight: 200, DaysToHarvest: 55, WaterNeeds: 3.0, FertilizerFrequency: 5,
	},
}

type Environment struct {
	Temperature    float64 `json:"temperature"`
	Humidity       float64 `json:"humidity"`
	SoilMoisture   float64 `json:"soil_moisture"`
	LightIntensity float64 `json:"light_intensity"`
	CO2Level       float64 `json:"co2_level"`
}

type PlantState struct {
	Height           float64 `json:"height"`
	LeafCount        int     `json:"leaf_count"`
	HealthScore      float64 `json:"health_score"`
	DaysOld          int     `json:"days_old"`
	ReadyForHarvest  bool    `json:"ready_for_harvest"`
}

type Controls struct {
	HeaterOn       bool `json:"heater_on"`
	CoolerOn       bool `json:"cooler_on"`
	HumidifierOn   bool `json:"humidifier_on"`
	IrrigationOn   bool `json:"irrigation_on"`
	CO2InjectionOn bool `json:"co2_injection_on"`
}

type Resources struct {
	WaterUsedLiters float64 `json:"water_used_liters"`
	PowerUsedKwh    float64 `json:"power_used_kwh"`
}

type GreenhouseState struct {
	Environment Environment `json:"environment"`
	Plant       PlantState  `json:"plant"`
	Controls    Controls    `json:"controls"`
	Resources   Resources   `json:"resources"`
	Timestamp   string      `json:"timestamp,omitempty"`
}

// Greenhouse simulates one greenhouse with a single crop. Deterministic
// enough for consistent advice within a session; safe for concurrent tool
// calls.
type Greenhouse struct {
	mu sync.Mutex

	cropType   string
	params     greenhouseCrop
	sowingDate time.Time

	env       Environment
	controls  Controls
	resources Resources

	height      float64
	leafCount   int
	healthScore float64

	stressHistory []float64
}

func NewGreenhouse(cropType string, sowingDate time.Time) *Greenhouse {
	name := normalizeCrop(cropType)
	params, ok := greenhouseCrops[name]
	if !ok {
		name, params = "tomato", greenhouseCrops["tomato"]
	}

	return &Greenhouse{
		cropType:   name,
		params:     params,
		sowingDate: sowingDate,
		env: Environment{
			Temperature:    25.0,
			Humidity:       70.0,
			SoilMoisture:   65.0,
			LightIntensity: 40000.0,
			CO2Level:       400.0,
		},
		height:      0.5,
		leafCount:   2,
		healthScore: 100,
	}
}

func (g *Greenhouse) State() GreenhouseState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stateLocked()
}

func (g *Greenhouse) stateLocked() GreenhouseState {
	age := int(time.Since(g.sowingDate).Hours() / 24)
	return GreenhouseState{
		Environment: g.env,
		Plant: PlantState{
			Height:          round2(g.height),
			LeafCount:       g.leafCount,
			HealthScore:     round2(g.healthScore),
			DaysOld:         age,
			ReadyForHarvest: age >= g.params.DaysToHarvest && g.healthScore > 50,
		},
		Controls:  g.controls,
		Resources: Resources{WaterUsedLiters: round2(g.resources.WaterUsedLiters), PowerUsedKwh: round2(g.resources.PowerUsedKwh)},
	}
}

// ApplyControl performs one actuator action and returns the resulting state.
func (g *Greenhouse) ApplyControl(action string, params map[string]float64) (GreenhouseState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	getOr := func(key string, def float64) float64 {
		if v, ok := params[key]; ok {
			return v
		}
		return def
	}

	switch action {
	case "heat":
		target := getOr("target_temp", 25)
		g.controls.HeaterOn = true
		g.env.Temperature = minF(target, g.env.Temperature+2)
		g.resources.PowerUsedKwh += 0.5
	case "cool":
		target := getOr("target_temp", 25)
		g.controls.CoolerOn = true
		g.env.Temperature = maxF(target, g.env.Temperature-2)
		g.resources.PowerUsedKwh += 0.8
	case "humidify":
		target := getOr("target_humidity", 70)
		g.controls.HumidifierOn = true
		g.env.Humidity = minF(target, g.env.Humidity+10)
		g.resources.WaterUsedLiters += 0.5
	case "irrigate":
		amount := getOr("amount", 2)
		g.controls.IrrigationOn = true
		g.resources.WaterUsedLiters += amount
		g.env.SoilMoisture = minF(95, g.env.SoilMoisture+amount*3)
	case "inject_co2":
		g.controls.CO2InjectionOn = true
		g.env.CO2Level = minF(1000, g.env.CO2Level+100)
	case "stop_all":
		g.controls = Controls{}
	default:
		return GreenhouseState{}, fmt.Errorf("unknown control action %q", action)
	}

	return g.stateLocked(), nil
}

// Step advances the simulation by the given hours: natural drift, then
// growth.
func (g *Greenhouse) Step(hours float64) GreenhouseState {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.driftLocked(hours)
	g.growLocked(hours / 24)

	state := g.stateLocked()
	state.Timestamp = time.Now().UTC().Format(time.RFC3339)
	return state
}

func (g *Greenhouse) driftLocked(hours float64) {
	hour := time.Now().Hour()
	daylight := hour >= 6 && hour <= 18

	ambient := 18 + rand.NormFloat64()*1.5
	if daylight {
		ambient = 22 + rand.NormFloat64()*2
	}
	g.env.Temperature += (ambient - g.env.Temperature) * 0.1 * hours

	humidityChange := -0.5 * hours
	if g.controls.IrrigationOn {
		humidityChange += 2
	}
	g.env.Humidity = clamp(g.env.Humidity+humidityChange, 30, 95)

	consumed := g.params.WaterNeeds * (hours / 24)
	if g.controls.IrrigationOn {
		g.env.SoilMoisture += 5*hours - consumed
	} else {
		g.env.SoilMoisture -= consumed
	}
	g.env.SoilMoisture = clamp(g.env.SoilMoisture, 20, 95)

	if daylight {
		g.env.LightIntensity = 45000 + rand.NormFloat64()*5000
	} else {
		g.env.LightIntensity = 10000 + rand.NormFloat64()*2000
	}

	co2Consumed := 5 * hours
	if g.controls.CO2InjectionOn {
		g.env.CO2Level = minF(1000, g.env.CO2Level+20*hours-co2Consumed)
	} else {
		g.env.CO2Level = maxF(350, g.env.CO2Level-co2Consumed)
	}
}

// growthFactorLocked scores current conditions: 1.0 optimal, below 0.8
// counts as stress, above 1.0 means CO2 boost.
func (g *Greenhouse) growthFactorLocked() float64 {
	tempFactor := 1.0
	switch {
	case g.env.Temperature < g.params.OptimalTemp[0]:
		tempFactor = maxF(0.3, 1-(g.params.OptimalTemp[0]-g.env.Temperature)*0.05)
	case g.env.Temperature > g.params.OptimalTemp[1]:
		tempFactor = maxF(0.3, 1-(g.env.Temperature-g.params.OptimalTemp[1])*0.05)
	}

	humFactor := 1.0
	if g.env.Humidity < g.params.OptimalHumidity[0] || g.env.Humidity > g.params.OptimalHumidity[1] {
		dev := minF(absF(g.env.Humidity-g.params.OptimalHumidity[0]), absF(g.env.Humidity-g.params.OptimalHumidity[1]))
		humFactor = maxF(0.5, 1-dev*0.01)
	}

	moistFactor := 1.0
	if g.env.SoilMoisture < g.params.OptimalMoisture[0] || g.env.SoilMoisture > g.params.OptimalMoisture[1] {
		dev := minF(absF(g.env.SoilMoisture-g.params.OptimalMoisture[0]), absF(g.env.SoilMoisture-g.params.OptimalMoisture[1]))
		moistFactor = maxF(0.4, 1-dev*0.015)
	}

	lightFactor := 1.0
	if g.env.LightIntensity < g.params.OptimalLight[0] {
		lightFactor = maxF(0.5, g.env.LightIntensity/g.params.OptimalLight[0])
	}

	co2Factor := 1.0
	if g.env.CO2Level >= 400 && g.env.CO2Level <= 1000 {
		co2Factor = 1 + (g.env.CO2Level-400)*0.0002
	}

	factor := tempFactor * humFactor * moistFactor * lightFactor * co2Factor
	if factor < 0.8 {
		g.stressHistory = append(g.stressHistory, (0.8-factor)*100)
		if len(g.stressHistory) > 7 {
			g.stressHistory = g.stressHistory[1:]
		}
	}
	return factor
}

func (g *Greenhouse) growLocked(days float64) {
	factor := g.growthFactorLocked()

	potential := g.params.MaxHeight - g.height
	g.height += g.params.GrowthRate * factor * (potential / g.params.MaxHeight) * days

	expectedLeaves := int(g.height / g.params.MaxHeight * 50)
	if expectedLeaves > g.leafCount {
		g.leafCount = expectedLeaves
		if g.leafCount > 100 {
			g.leafCount = 100
		}
	}

	var avgStress float64
	if len(g.stressHistory) > 0 {
		avgStress = sumOf(g.stressHistory) / float64(len(g.stressHistory))
	}
	g.healthScore = maxF(20, 100-avgStress)
}

// Recommendations compares current conditions to the crop's optima.
func (g *Greenhouse) Recommendations() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var recs []string
	if g.env.Temperature < g.params.OptimalTemp[0] {
		recs = append(recs, fmt.Sprintf("Temperature too low (%.1f C). Increase heating.", g.env.Temperature))
	} else if g.env.Temperature > g.params.OptimalTemp[1] {
		recs = append(recs, fmt.Sprintf("Temperature too high (%.1f C). Increase cooling.", g.env.Temperature))
	}
	if g.env.Humidity < g.params.OptimalHumidity[0] {
		recs = append(recs, fmt.Sprintf("Humidity too low (%.1f%%). Use humidifier.", g.env.Humidity))
	}
	if g.env.SoilMoisture < g.params.OptimalMoisture[0] {
		recs = append(recs, fmt.Sprintf("Soil moisture low (%.1f%%). Water plants.", g.env.SoilMoisture))
	}
	if g.healthScore < 70 {
		recs = append(recs, fmt.Sprintf("Plant health declining (%.0f/100). Check all conditions.", g.healthScore))
	}
	if len(recs) == 0 {
		recs = append(recs, "All systems optimal!")
	}
	return recs
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func registerGreenhouseCapabilities(r *Registry, gh *Greenhouse) {
	r.Register(Capability{
		Name:        "read_sensors",
		Description: "Read current greenhouse sensor values (temp, humidity, soil moisture, etc.)",
		Parameters:  json.RawMessage(`{"type": "object", "properties": {}, "required": []}`),
		Handler: func(_ context.Context, _ json.RawMessage) (any, error) {
			return gh.State(), nil
		},
	})

	r.Register(Capability{
		Name:        "control_environment",
		Description: "Control greenhouse environment (heat/cool/irrigate/humidify/co2)",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"action": {"type": "string", "enum": ["heat", "cool", "humidify", "irrigate", "inject_co2", "stop_all"]},
				"parameters": {"type": "object"}
			},
			"required": ["action"]
		}`),
		Handler: func(_ context.Context, args json.RawMessage) (any, error) {
			var in struct {
				Action     string             `json:"action"`
				Parameters map[string]float64 `json:"parameters"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, err
			}
			state, err := gh.ApplyControl(in.Action, in.Parameters)
			if err != nil {
				return nil, err
			}
			return map[string]any{"action": in.Action, "new_state": state}, nil
		},
	})

	r.Register(Capability{
		Name:        "get_recommendations",
		Description: "Get recommendations for current greenhouse conditions",
		Parameters:  json.RawMessage(`{"type": "object", "properties": {}, "required": []}`),
		Handler: func(_ context.Context, _ json.RawMessage) (any, error) {
			return gh.Recommendations(), nil
		},
	})
}
