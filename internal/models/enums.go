package models

type RecommendationType string

const (
	RecommendationCropSelection        RecommendationType = "crop_selection"
	RecommendationWeatherBased         RecommendationType = "weather_based"
	RecommendationPestDisease          RecommendationType = "pest_disease"
	RecommendationResourceOptimization RecommendationType = "resource_optimization"
	RecommendationMarketTiming         RecommendationType = "market_timing"
)

// AllRecommendationTypes lists every advisory type in pipeline order.
var AllRecommendationTypes = []RecommendationType{
	RecommendationCropSelection,
	RecommendationWeatherBased,
	RecommendationPestDisease,
	RecommendationResourceOptimization,
	RecommendationMarketTiming,
}

type ConfidenceLevel string

const (
	ConfidenceLow      ConfidenceLevel = "low"
	ConfidenceMedium   ConfidenceLevel = "medium"
	ConfidenceHigh     ConfidenceLevel = "high"
	ConfidenceVeryHigh ConfidenceLevel = "very_high"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type AlertKind string

const (
	AlertPest    AlertKind = "pest"
	AlertDisease AlertKind = "disease"
	AlertWeed    AlertKind = "weed"
)

type ResourceType string

const (
	ResourceWater      ResourceType = "water"
	ResourceFertilizer ResourceType = "fertilizer"
	ResourceSeeds      ResourceType = "seeds"
	ResourceLabor      ResourceType = "labor"
	ResourceEquipment  ResourceType = "equipment"
	ResourceEnergy     ResourceType = "energy"
)

// AllResourceTypes is the closed set evaluated once each per run.
var AllResourceTypes = []ResourceType{
	ResourceWater,
	ResourceFertilizer,
	ResourceSeeds,
	ResourceLabor,
	ResourceEquipment,
	ResourceEnergy,
}

type MarketAction string

const (
	MarketHold      MarketAction = "hold"
	MarketSellNow   MarketAction = "sell_now"
	MarketSellLater MarketAction = "sell_later"
	MarketStore     MarketAction = "store"
)

type PriceTrend string

const (
	TrendIncreasing PriceTrend = "increasing"
	TrendDecreasing PriceTrend = "decreasing"
	TrendStable     PriceTrend = "stable"
)

type ImplementationDifficulty string

const (
	DifficultyEasy      ImplementationDifficulty = "easy"
	DifficultyModerate  ImplementationDifficulty = "moderate"
	DifficultyDifficult ImplementationDifficulty = "difficult"
)

type Season string

const (
	SeasonWet    Season = "wet"
	SeasonDry    Season = "dry"
	SeasonHotDry Season = "hot_dry"
)

type WeatherCondition string

const (
	WeatherSunny        WeatherCondition = "sunny"
	WeatherPartlyCloudy WeatherCondition = "partly_cloudy"
	WeatherCloudy       WeatherCondition = "cloudy"
	WeatherRainy        WeatherCondition = "rainy"
	WeatherStormy       WeatherCondition = "stormy"
)

// AdvisoryStatus is the derived lifecycle state used for filtering.
type AdvisoryStatus string

const (
	AdvisoryStatusActive      AdvisoryStatus = "active"
	AdvisoryStatusImplemented AdvisoryStatus = "implemented"
	AdvisoryStatusDismissed   AdvisoryStatus = "dismissed"
	AdvisoryStatusAll         AdvisoryStatus = "all"
)

type AdvisoryAction string

const (
	ActionImplement  AdvisoryAction = "implement"
	ActionDismiss    AdvisoryAction = "dismiss"
	ActionReactivate AdvisoryAction = "reactivate"
)

func IsValidRecommendationType(t RecommendationType) bool {
	switch t {
	case RecommendationCropSelection, RecommendationWeatherBased, RecommendationPestDisease,
		RecommendationResourceOptimization, RecommendationMarketTiming:
		return true
	default:
		return false
	}
}

func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

func IsValidSeverity(s Severity) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	default:
		return false
	}
}

func IsValidAlertKind(k AlertKind) bool {
	switch k {
	case AlertPest, AlertDisease, AlertWeed:
		return true
	default:
		return false
	}
}

func IsValidResourceType(r ResourceType) bool {
	switch r {
	case ResourceWater, ResourceFertilizer, ResourceSeeds, ResourceLabor, ResourceEquipment, ResourceEnergy:
		return true
	default:
		return false
	}
}

func IsValidAdvisoryStatus(s AdvisoryStatus) bool {
	switch s {
	case AdvisoryStatusActive, AdvisoryStatusImplemented, AdvisoryStatusDismissed, AdvisoryStatusAll:
		return true
	default:
		return false
	}
}
