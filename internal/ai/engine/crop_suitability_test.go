package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recommendation-service/internal/models"
)

// ============================================================================
// TEST SUITE 2: CROP SUITABILITY
// ============================================================================

func TestSuitabilityScore_WeightedSum(t *testing.T) {
	got := SuitabilityScore(80, 70, 90, 85, 75, 75)
	// 20 + 14 + 13.5 + 12.75 + 11.25 + 7.5
	assert.Equal(t, 79.0, got)
}

func TestSuitabilityScore_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, SuitabilityScore(0, 0, 0, 0, 0, 0))
	assert.Equal(t, 100.0, SuitabilityScore(100, 100, 100, 100, 100, 100))
}

func TestScoreCropSuitability_CompositeMatchesSubScores(t *testing.T) {
	e := New(NewRandomSource(7))
	crops := []models.Crop{testCrop("Rice"), testCrop("Maize"), testCrop("Tomatoes"), testCrop("Cassava"), testCrop("Wheat")}
	asOf := date(2025, 7, 10)

	for i := 0; i < 50; i++ {
		for _, s := range e.ScoreCropSuitability(testField(), crops, nil, asOf) {
			r := s.Result
			want := SuitabilityScore(r.SoilCompatibility, r.ClimateCompatibility, r.WaterRequirementMatch,
				r.MarketDemandScore, r.PriceTrendScore, r.RotationBenefit)
			assert.InDelta(t, want, r.SuitabilityScore, 0.01)
			assert.GreaterOrEqual(t, r.SuitabilityScore, 0.0)
			assert.LessOrEqual(t, r.SuitabilityScore, 100.0)
			assert.Equal(t, models.SeasonWet, r.Season)
			assert.InDelta(t, 0.75+r.SuitabilityScore/100*0.20, s.AccuracyScore, 0.0001)
			assert.GreaterOrEqual(t, s.DataPoints, 150)
			assert.LessOrEqual(t, s.DataPoints, 500)
		}
	}
}

func TestScoreCropSuitability_RankedDescending(t *testing.T) {
	e := New(NewRandomSource(11))
	crops := []models.Crop{testCrop("Rice"), testCrop("Onions"), testCrop("Beans"), testCrop("Millet"), testCrop("Potatoes")}

	scores := e.ScoreCropSuitability(testField(), crops, nil, date(2025, 11, 3))

	require.Len(t, scores, len(crops))
	for i := 1; i < len(scores); i++ {
		assert.GreaterOrEqual(t, scores[i-1].Result.SuitabilityScore, scores[i].Result.SuitabilityScore)
	}
}

func TestScoreCropSuitability_RotationBenefit(t *testing.T) {
	maize := testCrop("Maize")
	rice := testCrop("Rice")
	asOf := date(2025, 4, 1)
	e := New(NewRandomSource(3))

	noHistory := e.ScoreCropSuitability(testField(), []models.Crop{maize}, nil, asOf)
	assert.Equal(t, 75.0, noHistory[0].Result.RotationBenefit)

	last := testCycle("Maize", date(2024, 10, 1), nil)
	last.CropID = maize.ID

	for i := 0; i < 20; i++ {
		same := e.ScoreCropSuitability(testField(), []models.Crop{maize}, []models.CropCycle{last}, asOf)
		assert.GreaterOrEqual(t, same[0].Result.RotationBenefit, 40.0)
		assert.LessOrEqual(t, same[0].Result.RotationBenefit, 70.0)

		different := e.ScoreCropSuitability(testField(), []models.Crop{rice}, []models.CropCycle{last}, asOf)
		assert.GreaterOrEqual(t, different[0].Result.RotationBenefit, 80.0)
		assert.LessOrEqual(t, different[0].Result.RotationBenefit, 95.0)
	}
}

func TestScoreCropSuitability_PlantingWindowsAtLowerBound(t *testing.T) {
	today := date(2025, 8, 1)
	crops := []models.Crop{testCrop("rice"), testCrop("MAIZE"), testCrop("Beans")}

	scores := New(lowSource()).ScoreCropSuitability(testField(), crops, nil, today)

	byName := map[string]models.CropSuitabilityResult{}
	for _, s := range scores {
		byName[s.Crop.Name] = s.Result
	}

	riceResult := byName["rice"]
	assert.Equal(t, today.AddDate(0, 0, 10), riceResult.OptimalPlantingStart)
	assert.Equal(t, today.AddDate(0, 0, 31), riceResult.OptimalPlantingEnd)
	assert.Equal(t, today.AddDate(0, 0, 130), riceResult.ExpectedHarvestDate)

	maizeResult := byName["MAIZE"]
	assert.Equal(t, today.AddDate(0, 0, 5), maizeResult.OptimalPlantingStart)
	assert.Equal(t, today.AddDate(0, 0, 19), maizeResult.OptimalPlantingEnd)
	assert.Equal(t, today.AddDate(0, 0, 95), maizeResult.ExpectedHarvestDate)
	assert.Equal(t, models.RiskHigh, maizeResult.CompetitionLevel)

	beans := byName["Beans"]
	assert.Equal(t, today.AddDate(0, 0, 7), beans.OptimalPlantingStart)
	assert.Equal(t, today.AddDate(0, 0, 21), beans.OptimalPlantingEnd)
	assert.Equal(t, today.AddDate(0, 0, 67), beans.ExpectedHarvestDate)
	assert.Equal(t, models.RiskLow, beans.CompetitionLevel)
}

func TestRiskLevelFor_Thresholds(t *testing.T) {
	assert.Equal(t, models.RiskLow, RiskLevelFor(80, 80))
	assert.Equal(t, models.RiskMedium, RiskLevelFor(79.98, 80))
	assert.Equal(t, models.RiskMedium, RiskLevelFor(65, 65))
	assert.Equal(t, models.RiskHigh, RiskLevelFor(60, 69.98))
}

func TestSuitabilityConfidence_Thresholds(t *testing.T) {
	assert.Equal(t, models.ConfidenceVeryHigh, SuitabilityConfidence(85))
	assert.Equal(t, models.ConfidenceHigh, SuitabilityConfidence(84.99))
	assert.Equal(t, models.ConfidenceHigh, SuitabilityConfidence(75))
	assert.Equal(t, models.ConfidenceMedium, SuitabilityConfidence(60))
	assert.Equal(t, models.ConfidenceLow, SuitabilityConfidence(59.99))
}

func TestCropAdvisoryPriority(t *testing.T) {
	assert.Equal(t, models.PriorityHigh, CropAdvisoryPriority(80.01))
	assert.Equal(t, models.PriorityMedium, CropAdvisoryPriority(80))
}
