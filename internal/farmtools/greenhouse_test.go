package farmtools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreenhouseDefaultsToTomato(t *testing.T) {
	gh := NewGreenhouse("dragonfruit", time.Now())
	state := gh.State()

	assert.Equal(t, 25.0, state.Environment.Temperature)
	assert.Equal(t, 0.5, state.Plant.Height)
	assert.Equal(t, 100.0, state.Plant.HealthScore)
	assert.False(t, state.Plant.ReadyForHarvest)
}

func TestGreenhouseApplyControl(t *testing.T) {
	gh := NewGreenhouse("tomato", time.Now())

	state, err := gh.ApplyControl("irrigate", map[string]float64{"amount": 4})
	require.NoError(t, err)
	assert.True(t, state.Controls.IrrigationOn)
	assert.Equal(t, 4.0, state.Resources.WaterUsedLiters)
	assert.Equal(t, 77.0, state.Environment.SoilMoisture)

	state, err = gh.ApplyControl("inject_co2", nil)
	require.NoError(t, err)
	assert.Equal(t, 500.0, state.Environment.CO2Level)

	state, err = gh.ApplyControl("stop_all", nil)
	require.NoError(t, err)
	assert.Equal(t, Controls{}, state.Controls)

	_, err = gh.ApplyControl("explode", nil)
	assert.Error(t, err)
}

func TestGreenhouseStepKeepsBounds(t *testing.T) {
	gh := NewGreenhouse("cucumber", time.Now().AddDate(0, 0, -10))

	var state GreenhouseState
	for i := 0; i < 48; i++ {
		state = gh.Step(1)
	}

	assert.GreaterOrEqual(t, state.Environment.Humidity, 30.0)
	assert.LessOrEqual(t, state.Environment.Humidity, 95.0)
	assert.GreaterOrEqual(t, state.Environment.SoilMoisture, 20.0)
	assert.GreaterOrEqual(t, state.Environment.CO2Level, 350.0)
	assert.Greater(t, state.Plant.Height, 0.5)
	assert.GreaterOrEqual(t, state.Plant.HealthScore, 20.0)
	assert.Equal(t, 10, state.Plant.DaysOld)
}

func TestGreenhouseRecommendations(t *testing.T) {
	gh := NewGreenhouse("lettuce", time.Now())

	// Initial state is 25C which is above lettuce's optimum of 15-20.
	recs := gh.Recommendations()
	require.NotEmpty(t, recs)
	assert.Contains(t, recs[0], "Temperature too high")
}
