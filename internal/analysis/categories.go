package analysis

import "github.com/urbanyx-service/internal/domain"

var categoryInfo = map[domain.ScoreCategory]domain.CategoryInfo{
	domain.CategoryPerfect:          {Label: "შესანიშნავი", Color: "#059669", Description: "სრულად ადაპტირებული"},
	domain.CategoryGood:             {Label: "კარგი", Color: "#22c55e", Description: "კარგად ადაპტირებული - საჭიროა მცირე გაუმჯობესება"},
	domain.CategoryGoodWithGaps:     {Label: "კარგი*", Color: "#22c55e", Description: "კარგად ადაპტირებული - არასრულყოფილი მონაცემები"},
	domain.CategoryFair:             {Label: "საშუალო", Color: "#f59e0b", Description: "მეტნაკლებად კარგად ადაპტირებული - საჭიროა მნიშვნელოვანი გაუმჯობესება"},
	domain.CategoryFairWithGaps:     {Label: "საშუალო*", Color: "#f59e0b", Description: "მეტნაკლებად კარგად ადაპტირებული - არასრულყოფილი მონაცემები"},
	domain.CategoryPoor:             {Label: "ცუდი", Color: "#ef4444", Description: "ცუდად ადაპტირებული - საჭიროა საფუძვლიანი გაუმჯობესება"},
	domain.CategoryPoorWithGaps:     {Label: "ცუდი*", Color: "#ef4444", Description: "ცუდად ადაპტირებული - არასრულყოფილი მონაცემები"},
	domain.CategoryCritical:         {Label: "კრიტიკული", Color: "#dc2626", Description: "კრიტიკული - თითქმის მიუწვდომელი"},
	domain.CategoryCriticalWithGaps: {Label: "კრიტიკული*", Color: "#dc2626", Description: "კრიტიკული - არასრული ინფორმაცია"},
	domain.CategoryNonExistent:      {Label: "არ არსებობს", Color: "#991b1b", Description: "არ არსებობს ადაპტირებული ინფრასტრუქტურა"},
	domain.CategoryInsufficientData: {Label: "უცნობი", Color: "#9ca3af", Description: "არასაკმარისი მონაცემები"},
}

// CategoryDisplay - подпись, цвет и описание категории; неизвестная категория как insufficient_data
func CategoryDisplay(c domain.ScoreCategory) domain.CategoryInfo {
	if info, ok := categoryInfo[c]; ok {
		return info
	}
	return categoryInfo[domain.CategoryInsufficientData]
}

// PlaygroundQualityLabel: >=70 очень хорошо, >=40 средне, иначе требует улучшения.
// При неизвестных признаках к подписи добавляется "*", как у категорий _with_gaps.
func PlaygroundQualityLabel(score domain.Score) string {
	if score.Value == nil {
		return categoryInfo[domain.CategoryInsufficientData].Label
	}

	var label string
	switch {
	case *score.Value >= 70:
		label = "ძალიან კარგი"
	case *score.Value >= 40:
		label = "საშუალო"
	default:
		label = "საჭიროებს გაუმჯობესებას"
	}
	if score.UnknownCount > 0 {
		label += "*"
	}
	return label
}

// Состояния зданий в порядке от худшего
var ConditionOrder = []string{"ჩასანაცვლებელია", "ცუდი", "დამაკმაყოფილებელი", "კარგი"}

var conditionColors = map[string]string{
	"ჩასანაცვლებელია":   "#dc2626",
	"ცუდი":              "#ef4444",
	"დამაკმაყოფილებელი": "#f59e0b",
	"კარგი":             "#22c55e",
}

// OccupancyStatusFor - уровень загрузки по медиане: <60, <=75, <=90, выше
func OccupancyStatusFor(median float64) domain.OccupancyStatus {
	switch {
	case median < 60:
		return domain.OccupancyStatus{Label: "დაბალ მაჩვენებელზე", Color: "#3b82f6"}
	case median <= 75:
		return domain.OccupancyStatus{Label: "ოპტიმალურ მაჩვენებელზე", Color: "#22c55e"}
	case median <= 90:
		return domain.OccupancyStatus{Label: "მაღალ მაჩვენებელზე", Color: "#f59e0b"}
	default:
		return domain.OccupancyStatus{Label: "განსაკუთრებით მაღალ მაჩვენებელზე", Color: "#ef4444"}
	}
}
