package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/urbanyx-service/internal/domain"
	"github.com/urbanyx-service/internal/pkg/utils"
)

// DefaultPlaygroundRadius - радиус поиска площадок вокруг детского сада, м
const DefaultPlaygroundRadius = 500

// Порог оценки "очень хорошо"
const excellentPlaygroundScore = 70

// IsPlayground - элемент описывает площадку: leisure=playground или непустой тег playground
func IsPlayground(tags map[string]string) bool {
	if tags == nil {
		return false
	}
	return tags["leisure"] == "playground" || tags["playground"] != ""
}

// AnalyzePlaygrounds оценивает площадки вокруг center и сортирует их по расстоянию
func AnalyzePlaygrounds(center domain.GeoPoint, elements []domain.OSMElement, radiusMeters int) *domain.PlaygroundReport {
	if radiusMeters <= 0 {
		radiusMeters = DefaultPlaygroundRadius
	}

	playgrounds := make([]domain.PlaygroundAnalysis, 0, len(elements))
	for _, el := range elements {
		if !IsPlayground(el.Tags) {
			continue
		}
		features := ExtractPlaygroundFeatures(el.Tags)
		score := ScorePlayground(features)
		playgrounds = append(playgrounds, domain.PlaygroundAnalysis{
			ID:           el.ID,
			Type:         el.Type,
			Location:     el.Location,
			Distance:     utils.DistanceMeters(center.Lat, center.Lon, el.Location.Lat, el.Location.Lon),
			Features:     features,
			Score:        score,
			QualityLabel: PlaygroundQualityLabel(score),
			Tags:         el.Tags,
		})
	}

	sort.SliceStable(playgrounds, func(i, j int) bool {
		return playgrounds[i].Distance < playgrounds[j].Distance
	})

	report := &domain.PlaygroundReport{
		RadiusMeters: radiusMeters,
		Playgrounds:  playgrounds,
		Count:        len(playgrounds),
	}
	summarizePlaygrounds(report)
	return report
}

// summarizePlaygrounds заполняет агрегаты и грузинские сообщения сводки.
// Площадки без оценки в среднее не входят. Оценки считаются из фиксированного бюджета,
// поэтому пробелы в тегах не завышают ExcellentCount.
func summarizePlaygrounds(report *domain.PlaygroundReport) {
	if report.Count == 0 {
		report.Messages = []string{
			"სამწუხაროდ, ამ რადიუსში სათამაშო მოედნები არ მოიძებნა OpenStreetMap-ის მონაცემებში. ეს შეიძლება ნიშნავდეს, რომ ისინი ჯერ არ არის დამატებული რუკაზე.",
		}
		return
	}

	closest := report.Playgrounds[0].Distance
	report.ClosestDistance = &closest

	sum, known := 0, 0
	for _, p := range report.Playgrounds {
		if p.Score.Value == nil {
			continue
		}
		sum += *p.Score.Value
		known++
		if *p.Score.Value >= excellentPlaygroundScore {
			report.ExcellentCount++
		}
	}

	messages := []string{
		fmt.Sprintf("%d მეტრის რადიუსში მოიძებნა <strong>%d</strong> სათამაშო მოედანი", report.RadiusMeters, report.Count),
		fmt.Sprintf("უახლოესი მოედანი: <strong>%.0f</strong> მეტრი", math.Round(closest)),
	}

	if known > 0 {
		avg := roundHalfUp(float64(sum) / float64(known))
		report.AverageScore = &avg
		messages = append(messages, fmt.Sprintf("საშუალო შეფასება: <strong>%d/100</strong>", avg))
	}

	if report.ExcellentCount > 0 {
		messages = append(messages, fmt.Sprintf("%d მოედანი შეფასებულია როგორც \"ძალიან კარგი\"", report.ExcellentCount))
	}

	if report.AverageScore != nil {
		switch {
		case *report.AverageScore < 40:
			messages = append(messages, "უმეტესობა მოედნები საჭიროებს გაუმჯობესებას უსაფრთხოებისა და ინვენტარის თვალსაზრისით")
		case *report.AverageScore >= excellentPlaygroundScore:
			messages = append(messages, "ზოგადად, მოედნები კარგ მდგომარეობაშია და უსაფრთხოა ბავშვებისთვის")
		}
	}

	report.Messages = messages
}
