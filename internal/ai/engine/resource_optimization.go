package engine

import (
	"fmt"
	"strings"

	"recommendation-service/internal/models"
)

const (
	ResourceModelVersion = "resource_optimization_v1.8"
	ResourceAlgorithm    = "Resource efficiency analysis with ML optimization"

	// MinimumSavings is the potential saving an analysis must exceed to be kept.
	MinimumSavings = 100.0

	investmentShare = 0.3
)

type resourceProfile struct {
	unit        string
	method      string
	timeline    string
	environment string
	action      string
}

var resourceProfiles = map[models.ResourceType]resourceProfile{
	models.ResourceWater: {
		unit:        "liters",
		method:      "Implement drip irrigation system and soil moisture sensors for precision watering",
		timeline:    "2-4 weeks",
		environment: "Reduced water consumption and improved groundwater conservation",
		action:      "Install soil moisture sensors and upgrade to drip irrigation system",
	},
	models.ResourceFertilizer: {
		unit:        "kg",
		method:      "Soil testing-based application and split fertilizer doses for better uptake",
		timeline:    "1-2 weeks",
		environment: "Lower nutrient runoff and reduced soil and water pollution",
		action:      "Conduct soil test and implement precision fertilizer application",
	},
	models.ResourceSeeds: {
		unit:        "kg",
		method:      "Optimize seeding rates based on field conditions and use certified high-quality seeds",
		timeline:    "Next planting season",
		environment: "Better crop establishment and reduced waste",
		action:      "Source certified seeds and optimize seeding rates for each field",
	},
	models.ResourceLabor: {
		unit:        "hours",
		method:      "Task scheduling optimization and mechanization of repetitive operations",
		timeline:    "1-3 weeks",
		environment: "Improved working conditions and reduced manual labor stress",
		action:      "Implement task scheduling system and consider mechanization options",
	},
	models.ResourceEquipment: {
		unit:        "hours",
		method:      "Preventive maintenance scheduling and optimal equipment utilization planning",
		timeline:    "2-6 weeks",
		environment: "Reduced fuel consumption and lower carbon emissions",
		action:      "Develop maintenance schedule and optimize equipment usage patterns",
	},
	models.ResourceEnergy: {
		unit:        "kWh",
		method:      "Energy-efficient equipment and solar power integration for irrigation pumps",
		timeline:    "4-8 weeks",
		environment: "Lower carbon footprint and renewable energy adoption",
		action:      "Audit energy usage and install energy-efficient equipment",
	},
}

// ResourceAnalysis is the estimate for one resource type.
type ResourceAnalysis struct {
	Detail           models.ResourceOptimization
	Title            string
	Description      string
	ActionRequired   string
	DataPoints       int
	AccuracyScore    float64
	SavingsBreakdown map[string]float64
}

// Worthwhile reports whether the savings clear MinimumSavings.
func (r ResourceAnalysis) Worthwhile() bool {
	return r.Detail.PotentialSavings > MinimumSavings
}

// RecommendedUsage applies an efficiency improvement percentage to a usage amount.
func RecommendedUsage(current, improvement float64) float64 {
	return round(current*(1-improvement/100), 2)
}

// PaybackDays is the days needed for savings to cover the investment, nil when
// there are no savings.
func PaybackDays(investment, annualSavings float64) *int {
	if annualSavings <= 0 {
		return nil
	}
	days := int(investment / (annualSavings / 365))
	return &days
}

// AnalyzeResources estimates every resource type in models.AllResourceTypes
// once, in that order. Callers keep only the Worthwhile results.
func (e *Engine) AnalyzeResources() []ResourceAnalysis {
	analyses := make([]ResourceAnalysis, 0, len(models.AllResourceTypes))
	for _, resourceType := range models.AllResourceTypes {
		analyses = append(analyses, e.analyzeResource(resourceType))
	}
	return analyses
}

func (e *Engine) analyzeResource(resourceType models.ResourceType) ResourceAnalysis {
	profile := resourceProfiles[resourceType]

	usage := round(e.uniform(1000, 5000), 2)
	cost := round(e.uniform(500, 2500), 2)
	improvement := round(e.uniform(10, 35), 2)
	savings := round(cost*(improvement/100), 2)
	investment := round(savings*investmentShare, 2)

	confidence := models.ConfidenceMedium
	if improvement > 20 {
		confidence = models.ConfidenceHigh
	}

	return ResourceAnalysis{
		Detail: models.ResourceOptimization{
			ResourceType:                    resourceType,
			CurrentUsageAmount:              usage,
			CurrentUsageUnit:                profile.unit,
			CurrentCost:                     cost,
			RecommendedUsageAmount:          RecommendedUsage(usage, improvement),
			PotentialSavings:                savings,
			EfficiencyImprovementPercentage: improvement,
			OptimizationMethod:              profile.method,
			ImplementationTimeline:          profile.timeline,
			RequiredInvestment:              investment,
			PaybackPeriodDays:               PaybackDays(investment, savings),
			EnvironmentalBenefit:            profile.environment,
			SustainabilityScore:             round(e.uniform(70, 95), 2),
			ConfidenceLevel:                 confidence,
		},
		Title: fmt.Sprintf("Optimize %s Usage", titleCase(string(resourceType))),
		Description: fmt.Sprintf("Analysis shows potential to reduce %s usage by %.2f%% while maintaining productivity. "+
			"Potential annual savings: $%.2f", resourceType, improvement, savings),
		ActionRequired: profile.action,
		DataPoints:     e.randInt(200, 500),
		AccuracyScore:  round(e.uniform(0.8, 0.95), 4),
		SavingsBreakdown: map[string]float64{
			"reduced_waste":       round(savings*0.40, 2),
			"efficiency_gains":    round(savings*0.35, 2),
			"technology_benefits": round(savings*0.25, 2),
		},
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
