package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanyx-service/internal/domain"
)

func schoolFeatures(ramp, lift, wc domain.AccessStatus) domain.SchoolFeatures {
	return domain.SchoolFeatures{Ramp: ramp, Lift: lift, AdaptedWC: wc}
}

func TestScoreSchool(t *testing.T) {
	tests := []struct {
		name         string
		features     domain.SchoolFeatures
		expected     *int
		category     domain.ScoreCategory
		unknownCount int
	}{
		{
			name:         "all unknown gives no value",
			features:     schoolFeatures(domain.AccessUnknown, domain.AccessUnknown, domain.AccessUnknown),
			expected:     nil,
			category:     domain.CategoryInsufficientData,
			unknownCount: 3,
		},
		{
			name:     "all good",
			features: schoolFeatures(domain.AccessGood, domain.AccessGood, domain.AccessGood),
			expected: intPtr(100),
			category: domain.CategoryPerfect,
		},
		{
			name:     "missing adapted wc",
			features: schoolFeatures(domain.AccessGood, domain.AccessGood, domain.AccessDoesNotExist),
			expected: intPtr(75),
			category: domain.CategoryGood,
		},
		{
			name:     "nothing exists",
			features: schoolFeatures(domain.AccessDoesNotExist, domain.AccessDoesNotExist, domain.AccessDoesNotExist),
			expected: intPtr(0),
			category: domain.CategoryNonExistent,
		},
		{
			name:     "all damaged",
			features: schoolFeatures(domain.AccessDamaged, domain.AccessDamaged, domain.AccessDamaged),
			expected: intPtr(10),
			category: domain.CategoryCritical,
		},
		{
			name:         "only ramp known renormalizes",
			features:     schoolFeatures(domain.AccessGood, domain.AccessUnknown, domain.AccessUnknown),
			expected:     intPtr(100),
			category:     domain.CategoryGoodWithGaps,
			unknownCount: 2,
		},
		{
			name:         "fair ramp with gaps",
			features:     schoolFeatures(domain.AccessFair, domain.AccessUnknown, domain.AccessUnknown),
			expected:     intPtr(65),
			category:     domain.CategoryFairWithGaps,
			unknownCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ScoreSchool(tt.features)
			assert.Equal(t, tt.category, score.Category)
			assert.Equal(t, tt.unknownCount, score.UnknownCount)
			if tt.expected == nil {
				assert.Nil(t, score.Value)
				return
			}
			require.NotNil(t, score.Value)
			assert.Equal(t, *tt.expected, *score.Value)
		})
	}
}

func TestScore_CategoryUsesUnroundedValue(t *testing.T) {
	score := Score([]WeightedItem{KnownItem(0.846, 1)})

	require.NotNil(t, score.Value)
	assert.Equal(t, 85, *score.Value)
	assert.Equal(t, domain.CategoryGood, score.Category)
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		score    float64
		unknown  int
		expected domain.ScoreCategory
	}{
		{85, 0, domain.CategoryPerfect},
		{84.99, 0, domain.CategoryGood},
		{65, 0, domain.CategoryGood},
		{45, 0, domain.CategoryFair},
		{20, 0, domain.CategoryPoor},
		{0.5, 0, domain.CategoryCritical},
		{0, 0, domain.CategoryNonExistent},
		{75, 1, domain.CategoryGoodWithGaps},
		{50, 2, domain.CategoryFairWithGaps},
		{25, 1, domain.CategoryPoorWithGaps},
		{0, 1, domain.CategoryCriticalWithGaps},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Categorize(tt.score, tt.unknown), "score=%v unknown=%d", tt.score, tt.unknown)
	}
	assert.True(t, domain.CategoryFairWithGaps.HasGaps())
	assert.False(t, domain.CategoryFair.HasGaps())
}

func TestScorePlayground(t *testing.T) {
	t.Run("no informative tags", func(t *testing.T) {
		score := ScorePlayground(ExtractPlaygroundFeatures(map[string]string{"leisure": "playground"}))
		assert.Nil(t, score.Value)
		assert.Equal(t, domain.CategoryInsufficientData, score.Category)
		assert.Equal(t, 15, score.UnknownCount)
		assert.Equal(t, "უცნობი", PlaygroundQualityLabel(score))
	})

	t.Run("single lit tag earns only its points", func(t *testing.T) {
		score := ScorePlayground(ExtractPlaygroundFeatures(map[string]string{
			"leisure": "playground",
			"lit":     "yes",
		}))

		// 40/4 баллов за освещение из 100
		require.NotNil(t, score.Value)
		assert.Equal(t, 10, *score.Value)
		assert.Equal(t, domain.CategoryCriticalWithGaps, score.Category)
		assert.Equal(t, 14, score.UnknownCount)
		assert.Equal(t, "საჭიროებს გაუმჯობესებას*", PlaygroundQualityLabel(score))
	})

	t.Run("known features only", func(t *testing.T) {
		features := ExtractPlaygroundFeatures(map[string]string{
			"leisure":    "playground",
			"playground": "swing",
			"fence":      "no",
			"surface":    "sand",
		})
		score := ScorePlayground(features)

		// 40/7 + 10 = 15.7
		require.NotNil(t, score.Value)
		assert.Equal(t, 16, *score.Value)
		assert.Equal(t, domain.CategoryCriticalWithGaps, score.Category)
		assert.Equal(t, 12, score.UnknownCount)
	})

	t.Run("full safety group", func(t *testing.T) {
		features := ExtractPlaygroundFeatures(map[string]string{
			"playground": "slide",
			"fence":      "yes",
			"surface":    "rubber",
			"lit":        "yes",
			"bench":      "yes",
		})
		score := ScorePlayground(features)

		// 40/7 + 40 = 45.7
		require.NotNil(t, score.Value)
		assert.Equal(t, 46, *score.Value)
		assert.Equal(t, domain.CategoryPoorWithGaps, score.Category)
		assert.Equal(t, 10, score.UnknownCount)
		assert.Equal(t, "საშუალო*", PlaygroundQualityLabel(score))
	})

	t.Run("every feature known", func(t *testing.T) {
		features := ExtractPlaygroundFeatures(map[string]string{
			"playground:swing":          "yes",
			"playground:slide":          "yes",
			"playground:climbing_frame": "yes",
			"playground:sandpit":        "no",
			"playground:seesaw":         "no",
			"playground:springy":        "no",
			"playground:structure":      "no",
			"fence":                     "yes",
			"surface":                   "asphalt",
			"lit":                       "yes",
			"bench":                     "yes",
			"shelter":                   "no",
			"toilets":                   "no",
			"drinking_water":            "yes",
			"wheelchair":                "yes",
		})
		score := ScorePlayground(features)

		// 3/7*40 + 3/4*40 + 2/4*20 = 17.1 + 30 + 10
		require.NotNil(t, score.Value)
		assert.Equal(t, 57, *score.Value)
		assert.Equal(t, domain.CategoryFair, score.Category)
		assert.Equal(t, 0, score.UnknownCount)
		assert.Equal(t, "საშუალო", PlaygroundQualityLabel(score))
	})
}

func TestScoreBudget(t *testing.T) {
	items := []WeightedItem{KnownItem(1, 30), UnknownItem(50), KnownItem(0.5, 20)}

	budget := ScoreBudget(items)
	require.NotNil(t, budget.Value)
	assert.Equal(t, 40, *budget.Value)
	assert.Equal(t, 1, budget.UnknownCount)
	assert.Equal(t, domain.CategoryPoorWithGaps, budget.Category)

	normalized := Score(items)
	require.NotNil(t, normalized.Value)
	assert.Equal(t, 80, *normalized.Value)

	empty := ScoreBudget([]WeightedItem{UnknownItem(10)})
	assert.Nil(t, empty.Value)
	assert.Equal(t, domain.CategoryInsufficientData, empty.Category)
}

func TestPlaygroundQualityLabel(t *testing.T) {
	tests := []struct {
		name     string
		score    domain.Score
		expected string
	}{
		{"unknown", domain.Score{UnknownCount: 15}, "უცნობი"},
		{"excellent", domain.Score{Value: intPtr(70)}, "ძალიან კარგი"},
		{"excellent with gaps", domain.Score{Value: intPtr(74), UnknownCount: 5}, "ძალიან კარგი*"},
		{"medium", domain.Score{Value: intPtr(40)}, "საშუალო"},
		{"poor", domain.Score{Value: intPtr(39)}, "საჭიროებს გაუმჯობესებას"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PlaygroundQualityLabel(tt.score))
		})
	}
}

func TestCategoryDisplay_UnknownFallsBack(t *testing.T) {
	info := CategoryDisplay(domain.ScoreCategory("bogus"))
	assert.Equal(t, CategoryDisplay(domain.CategoryInsufficientData), info)
}

func intPtr(v int) *int {
	return &v
}
