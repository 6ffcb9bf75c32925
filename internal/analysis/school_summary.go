package analysis

import (
	"math"
	"sort"
	"strings"

	"github.com/urbanyx-service/internal/domain"
)

// Пороги загрузки школ, %
const (
	OccupancyUnderutilized = 70.0
	OccupancyOptimalMax    = 90.0
)

type accessFeature struct {
	key   string
	label string
	get   func(domain.SchoolFeatures) domain.AccessStatus
}

var accessFeatures = []accessFeature{
	{"ramps", "პანდუსები", func(f domain.SchoolFeatures) domain.AccessStatus { return f.Ramp }},
	{"lifts", "ლიფტები", func(f domain.SchoolFeatures) domain.AccessStatus { return f.Lift }},
	{"adaptedWC", "ადაპტირებული WC", func(f domain.SchoolFeatures) domain.AccessStatus { return f.AdaptedWC }},
}

// SummarizeSchools считает агрегаты по школам области; для пустого списка - nil
func SummarizeSchools(schools []domain.School) *domain.SchoolSummary {
	if len(schools) == 0 {
		return nil
	}

	total := len(schools)
	summary := &domain.SchoolSummary{
		TotalSchools: total,
		Schools:      make([]domain.SchoolScore, 0, total),
	}

	conditionCounts := make(map[string]int, len(ConditionOrder))
	featureCounts := make([]map[domain.AccessStatus]int, len(accessFeatures))
	for i := range featureCounts {
		featureCounts[i] = make(map[domain.AccessStatus]int, len(domain.AccessStatuses))
		for _, s := range domain.AccessStatuses {
			featureCounts[i][s] = 0
		}
	}

	var occupancies []float64
	for _, school := range schools {
		f := ExtractSchoolFeatures(school.Properties)

		if v := valueOrZero(f.Students); v > 0 {
			summary.TotalStudents += v
		}
		summary.Investment.Urgent += valueOrZero(f.UrgentCost)
		summary.Investment.NonUrgent += valueOrZero(f.NonUrgentCost)
		summary.Investment.LongTerm += valueOrZero(f.LongTermCost)

		if v := valueOrZero(f.Occupancy); v > 0 {
			occupancies = append(occupancies, v)
		}

		trackCondition(f.Condition, conditionCounts, &summary.UnknownConditions)

		for i, feat := range accessFeatures {
			featureCounts[i][feat.get(f)]++
		}

		summary.Schools = append(summary.Schools, domain.SchoolScore{
			ID:       school.ID,
			Name:     school.Name,
			Location: school.Location,
			Features: f,
			Score:    ScoreSchool(f),
		})
	}

	summary.SchoolsWithData = len(occupancies)
	summary.MedianOccupancy = roundHalfUp(median(occupancies))
	if len(occupancies) > 0 {
		sum := 0.0
		for _, o := range occupancies {
			sum += o
		}
		summary.AvgOccupancy = roundHalfUp(sum / float64(len(occupancies)))
	}
	for _, o := range occupancies {
		switch {
		case o < OccupancyUnderutilized:
			summary.OccupancyDistribution.Underutilized++
		case o <= OccupancyOptimalMax:
			summary.OccupancyDistribution.Optimal++
		default:
			summary.OccupancyDistribution.Overcrowded++
		}
	}
	summary.OccupancyStatus = OccupancyStatusFor(float64(summary.MedianOccupancy))
	summary.AvgStudentsPerSchool = roundHalfUp(summary.TotalStudents / float64(total))

	inv := &summary.Investment
	inv.Total = inv.Urgent + inv.NonUrgent + inv.LongTerm
	inv.AvgPerSchool = math.Round(inv.Total / float64(total))

	summary.Conditions = make([]domain.ConditionCount, 0, len(ConditionOrder))
	for _, c := range ConditionOrder {
		count := conditionCounts[c]
		summary.Conditions = append(summary.Conditions, domain.ConditionCount{
			Condition: c,
			Count:     count,
			Percent:   roundHalfUp(float64(count) / float64(total) * 100),
			Color:     conditionColors[c],
		})
	}

	summary.Features = make([]domain.FeatureStat, 0, len(accessFeatures))
	for i, feat := range accessFeatures {
		summary.Features = append(summary.Features, domain.FeatureStat{
			Key:            feat.key,
			Label:          feat.label,
			Counts:         featureCounts[i],
			QualityPercent: featureQuality(featureCounts[i], total),
		})
	}

	summary.Accessibility = AggregateAccessibility(summary.Schools, featureCounts)
	summary.Narrative = BuildNarrative(summary)

	return summary
}

// conditionCount - число школ в состоянии condition
func conditionCount(conditions []domain.ConditionCount, condition string) int {
	for _, c := range conditions {
		if c.Condition == condition {
			return c.Count
		}
	}
	return 0
}

func trackCondition(condition string, counts map[string]int, unknown *int) {
	c := strings.TrimSpace(condition)
	for _, known := range ConditionOrder {
		if c == known {
			counts[c]++
			return
		}
	}
	*unknown++
}

// featureQuality = (good*100 + fair*65 + bad*30 + damaged*10) / всего школ
func featureQuality(counts map[domain.AccessStatus]int, total int) float64 {
	if total == 0 {
		return 0
	}
	sum := float64(counts[domain.AccessGood])*100 +
		float64(counts[domain.AccessFair])*65 +
		float64(counts[domain.AccessBad])*30 +
		float64(counts[domain.AccessDamaged])*10
	return roundTo(sum/float64(total), 1)
}

// AggregateAccessibility усредняет известные оценки школ; при пробелах хоть у одной школы - вариант _with_gaps
func AggregateAccessibility(scores []domain.SchoolScore, featureCounts []map[domain.AccessStatus]int) domain.AggregateAccessibility {
	agg := domain.AggregateAccessibility{
		Category:             domain.CategoryInsufficientData,
		CategoryDistribution: make(map[domain.ScoreCategory]int),
		TotalSchools:         len(scores),
	}

	var sum float64
	hasGaps := false
	for _, s := range scores {
		agg.CategoryDistribution[s.Score.Category]++
		if s.Score.UnknownCount > 0 {
			hasGaps = true
		}
		if s.Score.Value != nil {
			sum += float64(*s.Score.Value)
			agg.ValidScoresCount++
		}
	}

	if agg.ValidScoresCount == 0 {
		agg.CategoryDistribution = map[domain.ScoreCategory]int{}
		agg.CategoryInfo = CategoryDisplay(agg.Category)
		return agg
	}

	for _, counts := range featureCounts {
		agg.TotalMissing += counts[domain.AccessDoesNotExist]
		agg.TotalGood += counts[domain.AccessGood]
	}

	avg := sum / float64(agg.ValidScoresCount)
	unknown := 0
	if hasGaps {
		unknown = 1
	}
	agg.OverallScore = roundHalfUp(avg)
	agg.Category = Categorize(avg, unknown)
	agg.CategoryInfo = CategoryDisplay(agg.Category)
	agg.EstimatedFullyAccessible = agg.CategoryDistribution[domain.CategoryPerfect] + agg.CategoryDistribution[domain.CategoryGood]
	agg.EstimatedNonAccessible = agg.CategoryDistribution[domain.CategoryNonExistent] + agg.CategoryDistribution[domain.CategoryCritical]
	return agg
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 != 0 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
