package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recommendation-service/internal/models"
)

// ============================================================================
// TEST SUITE 5: RESOURCE OPTIMIZATION
// ============================================================================

func TestAnalyzeResources_EveryTypeOnce(t *testing.T) {
	analyses := New(NewRandomSource(1)).AnalyzeResources()

	require.Len(t, analyses, len(models.AllResourceTypes))
	for i, a := range analyses {
		assert.Equal(t, models.AllResourceTypes[i], a.Detail.ResourceType)
		assert.NotEmpty(t, a.Detail.CurrentUsageUnit)
		assert.NotEmpty(t, a.Detail.OptimizationMethod)
		assert.NotEmpty(t, a.ActionRequired)
	}
	assert.Equal(t, "liters", analyses[0].Detail.CurrentUsageUnit)
	assert.Equal(t, "kWh", analyses[5].Detail.CurrentUsageUnit)
	assert.Equal(t, "Optimize Water Usage", analyses[0].Title)
}

func TestAnalyzeResources_RecommendedUsageIdentity(t *testing.T) {
	e := New(NewRandomSource(77))

	for i := 0; i < 50; i++ {
		for _, a := range e.AnalyzeResources() {
			d := a.Detail
			assert.InDelta(t, d.CurrentUsageAmount*(1-d.EfficiencyImprovementPercentage/100), d.RecommendedUsageAmount, 0.01)
			assert.InDelta(t, d.CurrentCost*d.EfficiencyImprovementPercentage/100, d.PotentialSavings, 0.01)
			assert.InDelta(t, d.PotentialSavings*0.3, d.RequiredInvestment, 0.01)
			assert.GreaterOrEqual(t, d.SustainabilityScore, 70.0)
			assert.LessOrEqual(t, d.SustainabilityScore, 95.0)
			assert.Equal(t, d.PotentialSavings > MinimumSavings, a.Worthwhile())
		}
	}
}

func TestAnalyzeResources_LowerBoundNotWorthwhile(t *testing.T) {
	// cost 500 at 10% improvement saves 50.
	for _, a := range New(lowSource()).AnalyzeResources() {
		assert.Equal(t, 50.0, a.Detail.PotentialSavings)
		assert.False(t, a.Worthwhile())
		assert.Equal(t, models.ConfidenceMedium, a.Detail.ConfidenceLevel)
		assert.Equal(t, 900.0, a.Detail.RecommendedUsageAmount)
	}
}

func TestAnalyzeResources_UpperBoundWorthwhile(t *testing.T) {
	a := New(highSource()).AnalyzeResources()[0]

	assert.True(t, a.Worthwhile())
	assert.Equal(t, models.ConfidenceHigh, a.Detail.ConfidenceLevel)
	require.NotNil(t, a.Detail.PaybackPeriodDays)
	assert.InDelta(t, 109, *a.Detail.PaybackPeriodDays, 1)
	assert.InDelta(t, a.Detail.PotentialSavings*0.4, a.SavingsBreakdown["reduced_waste"], 0.01)
}

func TestPaybackDays(t *testing.T) {
	assert.Nil(t, PaybackDays(0, 0))

	days := PaybackDays(30, 100)
	require.NotNil(t, days)
	assert.Equal(t, 109, *days)
}

func TestRecommendedUsage(t *testing.T) {
	assert.Equal(t, 750.0, RecommendedUsage(1000, 25))
	assert.Equal(t, 3000.0, RecommendedUsage(3000, 0))
}
