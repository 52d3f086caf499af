package engine

import (
	"fmt"
	"time"

	"recommendation-service/internal/models"
)

const (
	WeatherModelVersion = "weather_analysis_v1.3"
	WeatherAlgorithm    = "Weather pattern analysis with ML prediction"
	WeatherDataSource   = "AI Weather Analysis Engine"

	// ForecastDays is the fixed length of every forecast sequence.
	ForecastDays = 7

	weatherAccuracy         = 0.875
	weatherForecastAccuracy = 87.5
)

var weatherConditions = []models.WeatherCondition{
	models.WeatherSunny,
	models.WeatherPartlyCloudy,
	models.WeatherCloudy,
	models.WeatherRainy,
	models.WeatherStormy,
}

type weatherGuidance struct {
	summary    string
	irrigation string
	pestRisk   string
	harvest    string
	fieldWork  string
	action     string
}

var (
	rainyGuidance = weatherGuidance{
		summary:    "Moderate to heavy rainfall expected on %s. Postpone fertilizer application and harvesting activities.",
		irrigation: "Skip irrigation. Monitor drainage in low-lying fields.",
		pestRisk:   "Increased risk of fungal diseases and slug activity.",
		harvest:    "Delay harvest if crops are ready. Wait for dry conditions.",
		fieldWork:  "Avoid heavy machinery use. Postpone tillage operations.",
		action:     "Secure equipment, protect harvested crops, check drainage systems",
	}
	stormyGuidance = weatherGuidance{
		summary:    "Severe weather warning for %s. Strong winds and heavy rain expected. Take protective measures.",
		irrigation: "Turn off irrigation systems. Secure equipment.",
		pestRisk:   "Storm may bring new pest pressure. Monitor after weather clears.",
		harvest:    "Emergency harvest if crops are mature and weather window permits.",
		fieldWork:  "No field work recommended. Secure all equipment and structures.",
		action:     "Emergency preparations: secure structures, protect livestock, check insurance",
	}
	sunnyGuidance = weatherGuidance{
		summary:    "Clear sunny conditions on %s. Excellent for field work and harvest activities.",
		irrigation: "Normal irrigation schedule. Monitor soil moisture in sandy soils.",
		pestRisk:   "Low pest activity. Good conditions for beneficial insects.",
		harvest:    "Optimal conditions for harvesting. Plan harvest activities.",
		fieldWork:  "Excellent conditions for all field operations including planting and cultivation.",
		action:     "Maximize field work efficiency, plan harvest and planting activities",
	}
	overcastGuidance = weatherGuidance{
		summary:    "Overcast conditions on %s. Good working conditions with reduced heat stress.",
		irrigation: "Reduce irrigation frequency. Good moisture retention expected.",
		pestRisk:   "Monitor for increased humidity-related pest activity.",
		harvest:    "Good harvesting conditions. Lower risk of heat stress on crops.",
		fieldWork:  "Good conditions for most field operations. Comfortable working temperatures.",
		action:     "Normal farm operations, adjust irrigation schedule as needed",
	}
)

func guidanceFor(condition models.WeatherCondition) weatherGuidance {
	switch condition {
	case models.WeatherRainy:
		return rainyGuidance
	case models.WeatherStormy:
		return stormyGuidance
	case models.WeatherSunny:
		return sunnyGuidance
	default:
		return overcastGuidance
	}
}

// WeatherForecast is one day of the forecast sequence.
type WeatherForecast struct {
	Detail         models.WeatherAdvisory
	HorizonDays    int
	Description    string
	ActionRequired string
	Priority       models.Priority
	Confidence     models.ConfidenceLevel
	DataPoints     int
	AccuracyScore  float64
}

// ForecastWeather returns exactly ForecastDays entries for the days after now,
// ordered by day offset. Each entry is valid for its whole calendar day.
func (e *Engine) ForecastWeather(now time.Time) []WeatherForecast {
	today := dateOf(now)
	forecasts := make([]WeatherForecast, 0, ForecastDays)

	for offset := 1; offset <= ForecastDays; offset++ {
		day := addDays(today, offset)
		condition := pick(e, weatherConditions)

		temperature := fmt.Sprintf("%d-%d°C", e.randInt(22, 28), e.randInt(29, 35))
		humidity := fmt.Sprintf("%d%%", e.randInt(60, 85))
		precipitation := "0mm"
		if condition == models.WeatherRainy || condition == models.WeatherStormy {
			precipitation = fmt.Sprintf("%dmm", e.randInt(0, 25))
		}

		guidance := guidanceFor(condition)
		priority := models.PriorityMedium
		if condition == models.WeatherStormy {
			priority = models.PriorityHigh
		}
		confidence := models.ConfidenceMedium
		if offset <= 3 {
			confidence = models.ConfidenceHigh
		}

		forecasts = append(forecasts, WeatherForecast{
			Detail: models.WeatherAdvisory{
				WeatherCondition:         condition,
				TemperatureRange:         temperature,
				HumidityLevel:            humidity,
				PrecipitationForecast:    precipitation,
				IrrigationAdvice:         guidance.irrigation,
				PestRiskAlert:            guidance.pestRisk,
				HarvestTimingAdvice:      guidance.harvest,
				FieldWorkRecommendations: guidance.fieldWork,
				WeatherDataSource:        WeatherDataSource,
				ForecastAccuracy:         weatherForecastAccuracy,
				ValidFrom:                day,
				ValidUntil:               endOfDay(day),
			},
			HorizonDays:    offset,
			Description:    fmt.Sprintf(guidance.summary, day.Format("January 02")),
			ActionRequired: guidance.action,
			Priority:       priority,
			Confidence:     confidence,
			DataPoints:     e.randInt(50, 200),
			AccuracyScore:  weatherAccuracy,
		})
	}
	return forecasts
}

func endOfDay(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, day.Location())
}
