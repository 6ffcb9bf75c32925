package analysis

import (
	"fmt"

	"github.com/paulmach/orb/geojson"

	"github.com/urbanyx-service/internal/domain"
)

// AccidentStatsFor считает ДТП по тяжести и собирает их в GeoJSON для карты
func AccidentStatsFor(accidents []domain.AccidentRecord) domain.AccidentStats {
	stats := domain.AccidentStats{
		Total:   len(accidents),
		GeoJSON: geojson.NewFeatureCollection(),
	}

	for _, a := range accidents {
		if a.Severity == domain.SeveritySevere {
			stats.Severe++
		} else {
			stats.Light++
		}

		f := geojson.NewFeature(a.Location.Orb())
		if a.ID != "" {
			f.ID = a.ID
		}
		f.Properties["severity"] = string(a.Severity)
		f.Properties["category"] = a.Severity.Label()
		f.Properties["weight"] = accidentWeight(a)
		stats.GeoJSON.Append(f)
	}

	if stats.Total == 0 {
		stats.Message = "ავარიები არ მოიძებნა"
		return stats
	}

	stats.SeverePercent = roundTo(float64(stats.Severe)/float64(stats.Total)*100, 1)
	stats.LightPercent = roundTo(float64(stats.Light)/float64(stats.Total)*100, 1)
	stats.Message = fmt.Sprintf("ამ არეალში, სულ <strong>%d</strong> ავტოსაგზაო შემთხვევა დაფიქსირდა", stats.Total)
	return stats
}
