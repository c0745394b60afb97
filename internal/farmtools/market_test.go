package farmtools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateProfit(t *testing.T) {
	report := CalculateProfit(ProfitInput{
		YieldQuintals:          50,
		SellingPricePerQuintal: 2500,
		SeedCost:               5000,
		FertilizerCost:         8000,
		LaborCost:              12000,
		IrrigationCost:         3000,
		OtherCosts:             2000,
	})

	assert.Equal(t, 125000.0, report.TotalRevenue)
	assert.Equal(t, 30000.0, report.TotalCosts)
	assert.Equal(t, 95000.0, report.NetProfit)
	assert.Equal(t, "High", report.Profitability)
	assert.InDelta(t, 76.0, report.ProfitMarginPercent, 0.01)
	assert.InDelta(t, 316.67, report.ROIPercent, 0.01)
}

func TestCalculateProfitLoss(t *testing.T) {
	report := CalculateProfit(ProfitInput{
		YieldQuintals:          10,
		SellingPricePerQuintal: 800,
		SeedCost:               5000,
		LaborCost:              6000,
	})

	assert.Equal(t, -3000.0, report.NetProfit)
	assert.Equal(t, "Low", report.Profitability)
}

func TestCurrentPriceSeasonalTrend(t *testing.T) {
	// July is a lean month for rice, so the quote should trend upward.
	july := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	quote := CurrentPrice("rice", "", july)

	assert.Equal(t, "rice", quote.Crop)
	assert.Equal(t, 2500.0, quote.BasePrice)
	assert.Equal(t, "increasing", quote.Trend)
	assert.Equal(t, "National Average", quote.Location)
	assert.Greater(t, quote.PricePerQuintal, 2500*1.0) // lean season premium beats the 5% daily swing
}

func TestCurrentPriceUnknownCrop(t *testing.T) {
	quote := CurrentPrice("dragonfruit", "Punjab", time.Now())
	assert.Equal(t, 2000.0, quote.PricePerQuintal)
	assert.NotEmpty(t, quote.Note)
}

func TestFindMarketplacesRanking(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	options := FindMarketplaces("wheat", "Punjab", 50, now)

	require.Len(t, options, 4)
	for i := 1; i < len(options); i++ {
		assert.GreaterOrEqual(t, options[i-1].NetPricePerQuintal, options[i].NetPricePerQuintal)
	}

	var trader *MarketplaceOption
	for i := range options {
		if options[i].Name == "Local Trader (Village)" {
			trader = &options[i]
		}
	}
	require.NotNil(t, trader)
	assert.Equal(t, "Immediate", trader.PaymentTerms)
	assert.Zero(t, trader.TransportCostPerQuintal)
}

func TestPriceForecast(t *testing.T) {
	now := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	forecast := PriceForecast("rice", 3, now)

	require.Len(t, forecast, 3)
	// October onward is harvest season for rice, prices fall.
	assert.Equal(t, "decreasing", forecast[1].Trend)

	assert.Empty(t, PriceForecast("dragonfruit", 3, now))
}
