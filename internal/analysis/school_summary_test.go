package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanyx-service/internal/domain"
)

func sampleSchools() []domain.School {
	return []domain.School{
		{
			ID:   "1",
			Name: "სკოლა #1",
			Properties: domain.TaggedRecord{
				"Ramp": "კარგი", "Adapted elevator": "კარგი", "Adapted WC": "კარგი",
				"students": 500.0, "occupancy": 120.0, "condition": "ცუდი", "urgent_cost": 1000000.0,
			},
		},
		{
			ID:   "2",
			Name: "სკოლა #2",
			Properties: domain.TaggedRecord{
				"Ramp": "does not exist", "Adapted elevator": "არ აქვს", "Adapted WC": "არ არსებობს",
				"students": 300.0, "occupancy": 80.0, "condition": "კარგი", "urgent_cost": "500000",
			},
		},
		{
			ID:   "3",
			Name: "სკოლა #3",
			Properties: domain.TaggedRecord{
				"students": "200", "occupancy": 50.0, "condition": "ჩასანაცვლებელია", "non_urg_cost": 500000.0,
			},
		},
	}
}

func TestSummarizeSchools(t *testing.T) {
	summary := SummarizeSchools(sampleSchools())
	require.NotNil(t, summary)

	assert.Equal(t, 3, summary.TotalSchools)
	assert.Equal(t, 1000.0, summary.TotalStudents)
	assert.Equal(t, 333, summary.AvgStudentsPerSchool)
	assert.Equal(t, 3, summary.SchoolsWithData)
	assert.Equal(t, 80, summary.MedianOccupancy)
	assert.Equal(t, 83, summary.AvgOccupancy)
	assert.Equal(t, domain.OccupancyDistribution{Underutilized: 1, Optimal: 1, Overcrowded: 1}, summary.OccupancyDistribution)
	assert.Equal(t, "მაღალ მაჩვენებელზე", summary.OccupancyStatus.Label)

	assert.Equal(t, 1500000.0, summary.Investment.Urgent)
	assert.Equal(t, 500000.0, summary.Investment.NonUrgent)
	assert.Equal(t, 2000000.0, summary.Investment.Total)
	assert.Equal(t, 666667.0, summary.Investment.AvgPerSchool)

	require.Len(t, summary.Conditions, 4)
	assert.Equal(t, "ჩასანაცვლებელია", summary.Conditions[0].Condition)
	assert.Equal(t, 1, summary.Conditions[0].Count)
	assert.Equal(t, 33, summary.Conditions[0].Percent)
	assert.Equal(t, 0, summary.Conditions[2].Count)
	assert.Equal(t, 0, summary.UnknownConditions)

	require.Len(t, summary.Features, 3)
	ramps := summary.Features[0]
	assert.Equal(t, "ramps", ramps.Key)
	assert.Equal(t, 1, ramps.Counts[domain.AccessGood])
	assert.Equal(t, 1, ramps.Counts[domain.AccessDoesNotExist])
	assert.Equal(t, 1, ramps.Counts[domain.AccessUnknown])
	assert.InDelta(t, 33.3, ramps.QualityPercent, 1e-9)

	require.Len(t, summary.Schools, 3)
	assert.Nil(t, summary.Schools[2].Score.Value)

	acc := summary.Accessibility
	assert.Equal(t, 50, acc.OverallScore)
	assert.Equal(t, 2, acc.ValidScoresCount)
	assert.Equal(t, domain.CategoryFairWithGaps, acc.Category)
	assert.Equal(t, 3, acc.TotalMissing)
	assert.Equal(t, 3, acc.TotalGood)
	assert.Equal(t, 1, acc.EstimatedFullyAccessible)
	assert.Equal(t, 1, acc.EstimatedNonAccessible)
	assert.Equal(t, 1, acc.CategoryDistribution[domain.CategoryInsufficientData])

	assert.NotEmpty(t, summary.Narrative)
}

func TestSummarizeSchools_Empty(t *testing.T) {
	assert.Nil(t, SummarizeSchools(nil))
}

func TestAggregateAccessibility_NoValidScores(t *testing.T) {
	scores := []domain.SchoolScore{
		{Score: domain.Score{Category: domain.CategoryInsufficientData, UnknownCount: 3}},
	}
	counts := []map[domain.AccessStatus]int{{domain.AccessGood: 4}}

	agg := AggregateAccessibility(scores, counts)

	assert.Equal(t, 0, agg.OverallScore)
	assert.Equal(t, domain.CategoryInsufficientData, agg.Category)
	assert.Equal(t, 0, agg.TotalGood)
	assert.Empty(t, agg.CategoryDistribution)
	assert.Equal(t, "უცნობი", agg.CategoryInfo.Label)
}

func TestSeverityLevels(t *testing.T) {
	crowding := map[int]Severity{61: SeverityCritical, 60: SeverityHigh, 31: SeverityHigh, 30: SeverityModerate, 1: SeverityModerate, 0: SeverityNone}
	for percent, expected := range crowding {
		assert.Equal(t, expected, CrowdingSeverity(percent), "crowding %d", percent)
	}

	condition := map[int]Severity{51: SeverityCritical, 50: SeverityHigh, 26: SeverityHigh, 25: SeverityModerate, 0: SeverityGood}
	for percent, expected := range condition {
		assert.Equal(t, expected, ConditionSeverity(percent), "condition %d", percent)
	}

	access := map[int]Severity{
		85: SeverityExcellent, 84: SeverityGood, 65: SeverityGood, 64: SeverityModerate,
		45: SeverityModerate, 44: SeverityPoor, 20: SeverityPoor, 19: SeverityCritical,
		1: SeverityCritical, 0: SeverityNone,
	}
	for score, expected := range access {
		assert.Equal(t, expected, AccessibilitySeverity(score), "access %d", score)
	}
}

func TestBuildNarrative(t *testing.T) {
	summary := SummarizeSchools(sampleSchools())
	require.NotNil(t, summary)

	in := NarrativeInputsFrom(summary)
	assert.Equal(t, 33, in.OvercrowdedPercent)
	assert.Equal(t, 2, in.PoorConditionTotal)
	assert.Equal(t, 67, in.PoorConditionPercent)
	assert.Equal(t, 1, in.NeedsReplacement)
	assert.Equal(t, SeverityHigh, in.Crowding)
	assert.Equal(t, SeverityCritical, in.Condition)
	assert.Equal(t, SeverityModerate, in.Accessibility)
	assert.Equal(t, 6, SeverityScore(in))

	text := summary.Narrative
	assert.True(t, strings.HasPrefix(text, "მონიშნულ არეალში"))
	assert.Contains(t, text, "<strong>333</strong>")
	assert.Contains(t, text, "<strong>1 სკოლის</strong> მნიშვნელოვან გადატვირთულობას. ")
	assert.Contains(t, text, "2 სკოლა საჭიროებს რეაბილიტაციას, 1 მათგანი კი სრულ ჩანაცვლებას. ")
	assert.Contains(t, text, "<br>ამას ემატება ფიზიკური მისაწვდომობის პრობლემა.")
	assert.Contains(t, text, "ამ მძიმე სიტუაციის გამოსასწორებლად საჭიროა <strong>1.5 მლნ ₾</strong> ინვესტიცია")
	assert.Contains(t, text, "<strong>75%</strong> სასწრაფოა")
	assert.Contains(t, text, "თითო მოსწავლეზე")
	assert.Contains(t, text, "მთავარი რეკომენდაცია - გადატვირთულობის შესამცირებლად აუცილებელია ახალი სკოლების მშენებლობა, ასევე არსებული ინფრასტრუქტურის სრულყოფილი რეაბილიტაცია, ასევე ინკლუზიური")
}

func TestBuildNarrative_GoodArea(t *testing.T) {
	schools := []domain.School{
		{ID: "1", Properties: domain.TaggedRecord{
			"Ramp": "კარგი", "Adapted elevator": "კარგი", "Adapted WC": "კარგი",
			"students": 400.0, "occupancy": 80.0, "condition": "კარგი",
		}},
	}

	text := SummarizeSchools(schools).Narrative

	assert.True(t, strings.HasPrefix(text, "ამ არეალში სკოლების დატვირთულობა ოპტიმალურ დონეზეა"))
	assert.Contains(t, text, "ინფრასტრუქტურა კარგ მდგომარეობაშია. ")
	assert.Contains(t, text, "<br>აღსანიშნავია")
	assert.NotContains(t, text, "ინვესტიცია")
	assert.Contains(t, text, "დასკვნის სახით")
	assert.Contains(t, text, "მაღალი ინკლუზიურობით")
}

func TestBuildNarrative_NilSummary(t *testing.T) {
	assert.Empty(t, BuildNarrative(nil))
	assert.Empty(t, BuildNarrative(&domain.SchoolSummary{}))
}
