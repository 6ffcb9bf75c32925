package analysis

import (
	"math"

	"github.com/urbanyx-service/internal/domain"
)

// Веса признаков доступности школы
const (
	RampWeight      = 0.45
	LiftWeight      = 0.30
	AdaptedWCWeight = 0.25
)

// Бюджет баллов групп признаков площадки
const (
	EquipmentPoints = 40.0
	SafetyPoints    = 40.0
	AmenityPoints   = 20.0
)

var statusWeights = map[domain.AccessStatus]float64{
	domain.AccessGood:         1.0,
	domain.AccessFair:         0.65,
	domain.AccessBad:          0.30,
	domain.AccessDamaged:      0.10,
	domain.AccessDoesNotExist: 0.0,
}

// StatusWeight - вес статуса; для Unknown ok == false
func StatusWeight(s domain.AccessStatus) (float64, bool) {
	w, ok := statusWeights[s]
	return w, ok
}

// PresenceWeight: есть - 1, нет - 0, неизвестно исключается
func PresenceWeight(p domain.Presence) (float64, bool) {
	switch p {
	case domain.PresencePresent:
		return 1, true
	case domain.PresenceAbsent:
		return 0, true
	}
	return 0, false
}

// WeightedItem - один признак: вес статуса в [0,1] (если известен) и вес признака
type WeightedItem struct {
	Status float64
	Known  bool
	Weight float64
}

func KnownItem(status, weight float64) WeightedItem {
	return WeightedItem{Status: status, Known: true, Weight: weight}
}

func UnknownItem(weight float64) WeightedItem {
	return WeightedItem{Weight: weight}
}

// Score нормирует сумму только по известным признакам.
// Категория считается по неокруглённому значению.
func Score(items []WeightedItem) domain.Score {
	return weightedScore(items, false)
}

// ScoreBudget - баллы из фиксированного бюджета: знаменатель - сумма весов всех признаков.
// Неизвестный признак даёт 0 баллов, но входит в UnknownCount.
func ScoreBudget(items []WeightedItem) domain.Score {
	return weightedScore(items, true)
}

func weightedScore(items []WeightedItem, fixedBudget bool) domain.Score {
	var totalScore, knownWeight, budget float64
	unknown := 0

	for _, item := range items {
		budget += item.Weight
		if !item.Known {
			unknown++
			continue
		}
		totalScore += item.Status * item.Weight
		knownWeight += item.Weight
	}

	if unknown == len(items) {
		return domain.Score{
			Category:     domain.CategoryInsufficientData,
			UnknownCount: unknown,
		}
	}

	denominator := knownWeight
	if fixedBudget {
		denominator = budget
	}
	normalized := 0.0
	if denominator > 0 {
		normalized = totalScore / denominator * 100
	}
	value := roundHalfUp(normalized)

	return domain.Score{
		Value:        &value,
		Category:     Categorize(normalized, unknown),
		UnknownCount: unknown,
	}
}

// Categorize раскладывает значение по порогам; при неизвестных признаках - вариант _with_gaps
func Categorize(score float64, unknownCount int) domain.ScoreCategory {
	if unknownCount > 0 {
		switch {
		case score >= 75:
			return domain.CategoryGoodWithGaps
		case score >= 50:
			return domain.CategoryFairWithGaps
		case score >= 25:
			return domain.CategoryPoorWithGaps
		default:
			return domain.CategoryCriticalWithGaps
		}
	}

	switch {
	case score >= 85:
		return domain.CategoryPerfect
	case score >= 65:
		return domain.CategoryGood
	case score >= 45:
		return domain.CategoryFair
	case score >= 20:
		return domain.CategoryPoor
	case score > 0:
		return domain.CategoryCritical
	default:
		return domain.CategoryNonExistent
	}
}

func statusItem(s domain.AccessStatus, weight float64) WeightedItem {
	if w, ok := StatusWeight(s); ok {
		return KnownItem(w, weight)
	}
	return UnknownItem(weight)
}

func presenceItem(p domain.Presence, weight float64) WeightedItem {
	if w, ok := PresenceWeight(p); ok {
		return KnownItem(w, weight)
	}
	return UnknownItem(weight)
}

// ScoreSchool - индекс физической доступности школы
func ScoreSchool(f domain.SchoolFeatures) domain.Score {
	return Score([]WeightedItem{
		statusItem(f.Ramp, RampWeight),
		statusItem(f.Lift, LiftWeight),
		statusItem(f.AdaptedWC, AdaptedWCWeight),
	})
}

// PlaygroundGroups - признаки площадки по группам в порядке оценки
func PlaygroundGroups(f domain.PlaygroundFeatures) (equipment, safety, amenities []domain.Presence) {
	equipment = []domain.Presence{f.Swing, f.Slide, f.ClimbingFrame, f.Sandbox, f.Seesaw, f.SpringRider, f.Structure}
	safety = []domain.Presence{f.Fence, f.SafeSurface, f.Lighting, f.Seating}
	amenities = []domain.Presence{f.Shelter, f.Toilet, f.Water, f.Wheelchair}
	return equipment, safety, amenities
}

// ScorePlayground распределяет 40/40/20 баллов равномерно внутри групп.
// Баллы неизвестных признаков не начисляются.
func ScorePlayground(f domain.PlaygroundFeatures) domain.Score {
	equipment, safety, amenities := PlaygroundGroups(f)

	items := make([]WeightedItem, 0, len(equipment)+len(safety)+len(amenities))
	for _, p := range equipment {
		items = append(items, presenceItem(p, EquipmentPoints/float64(len(equipment))))
	}
	for _, p := range safety {
		items = append(items, presenceItem(p, SafetyPoints/float64(len(safety))))
	}
	for _, p := range amenities {
		items = append(items, presenceItem(p, AmenityPoints/float64(len(amenities))))
	}
	return ScoreBudget(items)
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
