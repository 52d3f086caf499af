package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ============================================================================
// DETAIL RECORDS
// ============================================================================

type CropSuitabilityResult struct {
	ID                    uuid.UUID       `json:"id" db:"id"`
	FarmID                uuid.UUID       `json:"farm_id" db:"farm_id"`
	FieldID               uuid.UUID       `json:"field_id" db:"field_id"`
	CropID                uuid.UUID       `json:"crop_id" db:"crop_id"`
	CropName              string          `json:"crop_name" db:"crop_name"`
	Season                Season          `json:"season" db:"season"`
	SuitabilityScore      float64         `json:"suitability_score" db:"suitability_score"`
	ProfitPotential       float64         `json:"profit_potential" db:"profit_potential"`
	RiskLevel             RiskLevel       `json:"risk_level" db:"risk_level"`
	SoilCompatibility     float64         `json:"soil_compatibility" db:"soil_compatibility"`
	ClimateCompatibility  float64         `json:"climate_compatibility" db:"climate_compatibility"`
	WaterRequirementMatch float64         `json:"water_requirement_match" db:"water_requirement_match"`
	MarketDemandScore     float64         `json:"market_demand_score" db:"market_demand_score"`
	PriceTrendScore       float64         `json:"price_trend_score" db:"price_trend_score"`
	RotationBenefit       float64         `json:"rotation_benefit" db:"rotation_benefit"`
	CompetitionLevel      RiskLevel       `json:"competition_level" db:"competition_level"`
	OptimalPlantingStart  time.Time       `json:"optimal_planting_start" db:"optimal_planting_start"`
	OptimalPlantingEnd    time.Time       `json:"optimal_planting_end" db:"optimal_planting_end"`
	ExpectedHarvestDate   time.Time       `json:"expected_harvest_date" db:"expected_harvest_date"`
	ConfidenceLevel       ConfidenceLevel `json:"confidence_level" db:"confidence_level"`
	CreatedAt             time.Time       `json:"created_at" db:"created_at"`
}

type WeatherAdvisory struct {
	ID                       uuid.UUID        `json:"id" db:"id"`
	FarmID                   uuid.UUID        `json:"farm_id" db:"farm_id"`
	WeatherCondition         WeatherCondition `json:"weather_condition" db:"weather_condition"`
	TemperatureRange         string           `json:"temperature_range" db:"temperature_range"`
	HumidityLevel            string           `json:"humidity_level" db:"humidity_level"`
	PrecipitationForecast    string           `json:"precipitation_forecast" db:"precipitation_forecast"`
	IrrigationAdvice         string           `json:"irrigation_advice" db:"irrigation_advice"`
	PestRiskAlert            string           `json:"pest_risk_alert" db:"pest_risk_alert"`
	HarvestTimingAdvice      string           `json:"harvest_timing_advice" db:"harvest_timing_advice"`
	FieldWorkRecommendations string           `json:"field_work_recommendations" db:"field_work_recommendations"`
	WeatherDataSource        string           `json:"weather_data_source" db:"weather_data_source"`
	ForecastAccuracy         float64          `json:"forecast_accuracy" db:"forecast_accuracy"`
	ValidFrom                time.Time        `json:"valid_from" db:"valid_from"`
	ValidUntil               time.Time        `json:"valid_until" db:"valid_until"`
	CreatedAt                time.Time        `json:"created_at" db:"created_at"`
}

type PestDiseaseAlert struct {
	ID                    uuid.UUID      `json:"id" db:"id"`
	FarmID                uuid.UUID      `json:"farm_id" db:"farm_id"`
	CropID                uuid.UUID      `json:"crop_id" db:"crop_id"`
	FieldID               uuid.UUID      `json:"field_id" db:"field_id"`
	PestOrDiseaseName     string         `json:"pest_or_disease_name" db:"pest_or_disease_name"`
	Type                  AlertKind      `json:"type" db:"type"`
	SeverityLevel         Severity       `json:"severity_level" db:"severity_level"`
	ProbabilityPercentage float64        `json:"probability_percentage" db:"probability_percentage"`
	RiskFactors           pq.StringArray `json:"risk_factors" db:"risk_factors"`
	ExpectedImpact        string         `json:"expected_impact" db:"expected_impact"`
	RecommendedActions    string         `json:"recommended_actions" db:"recommended_actions"`
	TreatmentOptions      pq.StringArray `json:"treatment_options" db:"treatment_options"`
	PreventionMeasures    string         `json:"prevention_measures" db:"prevention_measures"`
	MonitoringSchedule    string         `json:"monitoring_schedule" db:"monitoring_schedule"`
	ExpectedOnsetDate     time.Time      `json:"expected_onset_date" db:"expected_onset_date"`
	PredictionModel       string         `json:"prediction_model" db:"prediction_model"`
	ConfidenceScore       float64        `json:"confidence_score" db:"confidence_score"`
	IsActive              bool           `json:"is_active" db:"is_active"`
	AlertDate             time.Time      `json:"alert_date" db:"alert_date"`
}

type ResourceOptimization struct {
	ID                              uuid.UUID       `json:"id" db:"id"`
	FarmID                          uuid.UUID       `json:"farm_id" db:"farm_id"`
	ResourceType                    ResourceType    `json:"resource_type" db:"resource_type"`
	CurrentUsageAmount              float64         `json:"current_usage_amount" db:"current_usage_amount"`
	CurrentUsageUnit                string          `json:"current_usage_unit" db:"current_usage_unit"`
	CurrentCost                     float64         `json:"current_cost" db:"current_cost"`
	RecommendedUsageAmount          float64         `json:"recommended_usage_amount" db:"recommended_usage_amount"`
	PotentialSavings                float64         `json:"potential_savings" db:"potential_savings"`
	EfficiencyImprovementPercentage float64         `json:"efficiency_improvement_percentage" db:"efficiency_improvement_percentage"`
	OptimizationMethod              string          `json:"optimization_method" db:"optimization_method"`
	ImplementationTimeline          string          `json:"implementation_timeline" db:"implementation_timeline"`
	RequiredInvestment              float64         `json:"required_investment" db:"required_investment"`
	PaybackPeriodDays               *int            `json:"payback_period_days,omitempty" db:"payback_period_days"`
	EnvironmentalBenefit            string          `json:"environmental_benefit" db:"environmental_benefit"`
	SustainabilityScore             float64         `json:"sustainability_score" db:"sustainability_score"`
	ConfidenceLevel                 ConfidenceLevel `json:"confidence_level" db:"confidence_level"`
	CreatedAt                       time.Time       `json:"created_at" db:"created_at"`
}

type MarketPricePrediction struct {
	ID                    uuid.UUID    `json:"id" db:"id"`
	CropID                uuid.UUID    `json:"crop_id" db:"crop_id"`
	CropName              string       `json:"crop_name" db:"crop_name"`
	Region                string       `json:"region" db:"region"`
	CurrentPrice          float64      `json:"current_price" db:"current_price"`
	PredictedPrice        float64      `json:"predicted_price" db:"predicted_price"`
	PriceUnit             string       `json:"price_unit" db:"price_unit"`
	PredictionDate        time.Time    `json:"prediction_date" db:"prediction_date"`
	PredictionHorizonDays int          `json:"prediction_horizon_days" db:"prediction_horizon_days"`
	SupplyDemandRatio     float64      `json:"supply_demand_ratio" db:"supply_demand_ratio"`
	SeasonalFactor        float64      `json:"seasonal_factor" db:"seasonal_factor"`
	WeatherImpactFactor   float64      `json:"weather_impact_factor" db:"weather_impact_factor"`
	RecommendedAction     MarketAction `json:"recommended_action" db:"recommended_action"`
	OptimalSellingDate    time.Time    `json:"optimal_selling_date" db:"optimal_selling_date"`
	PredictionModel       string       `json:"prediction_model" db:"prediction_model"`
	ConfidenceInterval    string       `json:"confidence_interval" db:"confidence_interval"`
	AccuracyScore         float64      `json:"accuracy_score" db:"accuracy_score"`
	CreatedAt             time.Time    `json:"created_at" db:"created_at"`
}
