package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"recommendation-service/internal/models"
	utils "recommendation-service/shared/utils"
)

// Validity windows measured from generation time.
const (
	CropAdvisoryValidity     = 30 * 24 * time.Hour
	PestAdvisoryValidity     = 14 * 24 * time.Hour
	ResourceAdvisoryValidity = 60 * 24 * time.Hour
	MarketAdvisoryValidity   = 45 * 24 * time.Hour
)

// The builders below return advisories without ownership or detail linkage;
// the caller sets FarmID, UserID and DetailID when persisting.

func newAdvisory(t models.RecommendationType, now time.Time, validUntil time.Time) models.Advisory {
	return models.Advisory{
		RecommendationType: t,
		CreatedAt:          now,
		ValidUntil:         &validUntil,
		IsActive:           true,
	}
}

func CropAdvisory(field models.Field, score CropScore, now time.Time) models.Advisory {
	r := score.Result
	a := newAdvisory(models.RecommendationCropSelection, now, now.Add(CropAdvisoryValidity))
	a.Title = fmt.Sprintf("Plant %s in %s", r.CropName, field.Name)
	a.Description = fmt.Sprintf("Based on analysis of soil conditions, market trends, and historical data, "+
		"%s is highly suitable for %s this season. Expected profit: $%.2f/hectare",
		r.CropName, field.Name, r.ProfitPotential)
	a.ActionRequired = fmt.Sprintf("Prepare %s for planting %s between %s and %s",
		field.Name, r.CropName, r.OptimalPlantingStart.Format(time.DateOnly), r.OptimalPlantingEnd.Format(time.DateOnly))
	a.ConfidenceLevel = r.ConfidenceLevel
	a.Priority = CropAdvisoryPriority(r.SuitabilityScore)
	a.ModelVersion = CropSelectionModelVersion
	a.AlgorithmUsed = CropSelectionAlgorithm
	a.DataPointsUsed = score.DataPoints
	a.AccuracyScore = score.AccuracyScore
	a.CropID = ptr(r.CropID)
	a.FieldID = ptr(field.ID)
	a.Metadata = utils.JSONMap{
		"factors_analyzed":  score.FactorsAnalyzed,
		"suitability_score": r.SuitabilityScore,
	}
	return a
}

func WeatherAdvisory(f WeatherForecast, now time.Time) models.Advisory {
	a := newAdvisory(models.RecommendationWeatherBased, now, f.Detail.ValidUntil)
	a.Title = fmt.Sprintf("Weather Advisory: %s", f.Detail.WeatherCondition)
	a.Description = f.Description
	a.ActionRequired = f.ActionRequired
	a.ConfidenceLevel = f.Confidence
	a.Priority = f.Priority
	a.ModelVersion = WeatherModelVersion
	a.AlgorithmUsed = WeatherAlgorithm
	a.DataPointsUsed = f.DataPoints
	a.AccuracyScore = f.AccuracyScore
	a.Metadata = utils.JSONMap{
		"weather_source":   "multiple_apis",
		"forecast_horizon": f.HorizonDays,
	}
	return a
}

func PestAdvisory(risk PestRisk, now time.Time) models.Advisory {
	a := newAdvisory(models.RecommendationPestDisease, now, now.Add(PestAdvisoryValidity))
	a.Title = fmt.Sprintf("%s Risk Alert", risk.Alert.PestOrDiseaseName)
	a.Description = risk.Description
	a.ActionRequired = risk.ActionRequired
	a.ConfidenceLevel = risk.Confidence
	a.Priority = risk.AdvisoryPriority
	a.ModelVersion = PestModelVersion
	a.AlgorithmUsed = PestAlgorithm
	a.DataPointsUsed = risk.DataPoints
	a.AccuracyScore = risk.Alert.ConfidenceScore
	a.CropID = ptr(risk.Alert.CropID)
	a.FieldID = ptr(risk.Alert.FieldID)
	a.Metadata = utils.JSONMap{
		"risk_assessment": risk.RiskAssessment,
		"severity":        risk.Alert.SeverityLevel,
	}
	return a
}

func ResourceAdvisory(r ResourceAnalysis, now time.Time) models.Advisory {
	a := newAdvisory(models.RecommendationResourceOptimization, now, now.Add(ResourceAdvisoryValidity))
	a.Title = r.Title
	a.Description = r.Description
	a.ActionRequired = r.ActionRequired
	a.ConfidenceLevel = r.Detail.ConfidenceLevel
	a.Priority = models.PriorityMedium
	a.ModelVersion = ResourceModelVersion
	a.AlgorithmUsed = ResourceAlgorithm
	a.DataPointsUsed = r.DataPoints
	a.AccuracyScore = r.AccuracyScore
	a.Metadata = utils.JSONMap{
		"optimization_type": r.Detail.ResourceType,
		"savings_breakdown": r.SavingsBreakdown,
	}
	return a
}

func MarketAdvisory(f MarketForecast, now time.Time) models.Advisory {
	a := newAdvisory(models.RecommendationMarketTiming, now, now.Add(MarketAdvisoryValidity))
	a.Title = f.Title
	a.Description = f.Description
	a.ActionRequired = f.ActionRequired
	a.ConfidenceLevel = f.Confidence
	a.Priority = models.PriorityMedium
	a.ModelVersion = MarketModelVersion
	a.AlgorithmUsed = MarketAlgorithm
	a.DataPointsUsed = f.DataPoints
	a.AccuracyScore = f.Detail.AccuracyScore
	a.CropID = ptr(f.Detail.CropID)
	a.Metadata = utils.JSONMap{
		"market_factors":          f.MarketFactors,
		"price_change_percentage": f.PriceChangePercentage,
	}
	return a
}

func ptr(id uuid.UUID) *uuid.UUID {
	return &id
}
