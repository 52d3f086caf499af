package engine

import (
	"fmt"
	"math"
	"time"

	"recommendation-service/internal/models"
)

const (
	MarketModelVersion = "market_prediction_v1.5"
	MarketAlgorithm    = "Time series analysis with market factor integration"

	// MarketHorizonDays bounds how far ahead a harvest may be to get a forecast.
	MarketHorizonDays = 90

	MarketRegion    = "Local Market"
	MarketPriceUnit = "per kg"
)

var priceTrends = []models.PriceTrend{
	models.TrendIncreasing,
	models.TrendDecreasing,
	models.TrendStable,
}

// MarketForecast is the price outlook for one upcoming harvest.
type MarketForecast struct {
	Detail                models.MarketPricePrediction
	Trend                 models.PriceTrend
	PriceChangePercentage float64
	Confidence            models.ConfidenceLevel
	DataPoints            int
	Title                 string
	Description           string
	ActionRequired        string
	MarketFactors         map[string]string
}

// HarvestWithin reports whether the cycle's harvest date falls in
// [asOf, asOf+days].
func HarvestWithin(cycle models.CropCycle, asOf time.Time, days int) bool {
	if cycle.HarvestDate == nil {
		return false
	}
	today := calendarDate(asOf)
	harvest := calendarDate(*cycle.HarvestDate)
	return !harvest.Before(today) && !harvest.After(addDays(today, days))
}

// PredictMarketTiming projects a price trend for the cycle's crop and the sell
// or hold action that goes with it.
func (e *Engine) PredictMarketTiming(cycle models.CropCycle, asOf time.Time) MarketForecast {
	today := dateOf(asOf)

	current := round(e.uniform(2.0, 8.0), 2)
	trend := pick(e, priceTrends)

	var change float64
	switch trend {
	case models.TrendIncreasing:
		change = e.uniform(5, 25)
	case models.TrendDecreasing:
		change = e.uniform(-20, -5)
	default:
		change = e.uniform(-5, 5)
	}
	predicted := round(current*(1+change/100), 2)

	predictionDate := addDays(today, e.randInt(15, 45))
	action, sellOn, actionText := marketAction(trend, today, predictionDate)

	confidence := models.ConfidenceMedium
	if math.Abs(change) > 10 {
		confidence = models.ConfidenceHigh
	}

	return MarketForecast{
		Detail: models.MarketPricePrediction{
			CropID:                cycle.CropID,
			CropName:              cycle.CropName,
			Region:                MarketRegion,
			CurrentPrice:          current,
			PredictedPrice:        predicted,
			PriceUnit:             MarketPriceUnit,
			PredictionDate:        predictionDate,
			PredictionHorizonDays: e.randInt(30, 60),
			SupplyDemandRatio:     round(e.uniform(0.8, 1.3), 4),
			SeasonalFactor:        round(e.uniform(0.9, 1.2), 4),
			WeatherImpactFactor:   round(e.uniform(0.95, 1.1), 4),
			RecommendedAction:     action,
			OptimalSellingDate:    sellOn,
			PredictionModel:       MarketModelVersion,
			ConfidenceInterval:    fmt.Sprintf("±%d%%", e.randInt(5, 15)),
			AccuracyScore:         round(e.uniform(0.75, 0.92), 4),
		},
		Trend:                 trend,
		PriceChangePercentage: round(change, 2),
		Confidence:            confidence,
		DataPoints:            e.randInt(300, 800),
		Title:                 fmt.Sprintf("Market Timing for %s", cycle.CropName),
		Description: fmt.Sprintf("Price prediction for %s: Price %s by %.1f%%. Current price: $%.2f/kg, Predicted price: $%.2f/kg",
			cycle.CropName, trend, math.Abs(change), current, predicted),
		ActionRequired: actionText,
		MarketFactors: map[string]string{
			"supply_level":    pick(e, []string{"low", "normal", "high"}),
			"demand_level":    pick(e, []string{"low", "normal", "high"}),
			"export_demand":   pick(e, []string{"weak", "moderate", "strong"}),
			"competing_crops": pick(e, []string{"few", "moderate", "many"}),
		},
	}
}

func marketAction(trend models.PriceTrend, today, predictionDate time.Time) (models.MarketAction, time.Time, string) {
	switch trend {
	case models.TrendIncreasing:
		return models.MarketSellLater, predictionDate,
			fmt.Sprintf("Hold harvest and sell around %s for better prices", predictionDate.Format(time.DateOnly))
	case models.TrendDecreasing:
		return models.MarketSellNow, today, "Sell immediately as prices are expected to decline"
	default:
		return models.MarketHold, addDays(today, 7), "Monitor market conditions and sell when ready"
	}
}
