package analysis

import (
	"fmt"
	"math"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/urbanyx-service/internal/domain"
)

// DefaultDangerousWeight - взвешенное число ДТП, с которого участок считается опасным
const DefaultDangerousWeight = 4.0

// RouteParams - параметры анализа маршрута
type RouteParams struct {
	BufferMeters    float64
	DangerousWeight float64
}

func (p RouteParams) withDefaults() RouteParams {
	if p.BufferMeters <= 0 {
		p.BufferMeters = DefaultBufferMeters
	}
	if p.DangerousWeight <= 0 {
		p.DangerousWeight = DefaultDangerousWeight
	}
	return p
}

type colorStop struct {
	value   float64
	r, g, b uint8
}

var rampStops = []colorStop{
	{0, 0x22, 0xc5, 0x5e},
	{1, 0x84, 0xcc, 0x16},
	{2, 0xea, 0xb3, 0x08},
	{4, 0xf5, 0x9e, 0x0b},
	{6, 0xef, 0x44, 0x44},
	{10, 0xdc, 0x26, 0x26},
}

// RampColor - линейная интерполяция цветовой шкалы опасности по weightedCount
func RampColor(weighted float64) string {
	first, last := rampStops[0], rampStops[len(rampStops)-1]
	if weighted <= first.value {
		return hexColor(first.r, first.g, first.b)
	}
	if weighted >= last.value {
		return hexColor(last.r, last.g, last.b)
	}
	for i := 1; i < len(rampStops); i++ {
		lo, hi := rampStops[i-1], rampStops[i]
		if weighted > hi.value {
			continue
		}
		t := (weighted - lo.value) / (hi.value - lo.value)
		return hexColor(lerp(lo.r, hi.r, t), lerp(lo.g, hi.g, t), lerp(lo.b, hi.b, t))
	}
	return hexColor(last.r, last.g, last.b)
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func hexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// AverageSpeed - среднее по известным ограничениям скорости, nil если данных нет
func AverageSpeed(speeds []float64) *float64 {
	if len(speeds) == 0 {
		return nil
	}
	sum := 0.0
	for _, s := range speeds {
		sum += s
	}
	avg := sum / float64(len(speeds))
	return &avg
}

// SevereCrashProbability - тяжёлые ДТП на километр с поправкой на скорость
func SevereCrashProbability(severe int, distanceMeters float64, avgSpeed *float64) float64 {
	routeKm := distanceMeters / 1000
	if routeKm == 0 {
		routeKm = 1
	}
	prob := float64(severe) / routeKm
	if avgSpeed != nil {
		prob *= math.Pow(*avgSpeed/30, 1.2)
	}
	return prob
}

// ProbabilityColor: <=0.1 зелёный, <=0.3 оранжевый, выше - красный
func ProbabilityColor(prob float64) string {
	switch {
	case prob <= 0.1:
		return "rgba(0,128,0,0.8)"
	case prob <= 0.3:
		return "rgba(255,165,0,0.8)"
	default:
		return "rgba(255,0,0,0.8)"
	}
}

func speedAssessment(avg *float64, mode domain.TravelMode) (level, message string) {
	if avg == nil {
		return "unknown", "სიჩქარის მონაცემი მიუწვდომელია"
	}
	speedText := strconv.FormatFloat(*avg, 'f', 1, 64) + " კმ/სთ"
	modeLabel := mode.Label()
	switch {
	case *avg <= 30:
		return "slow", fmt.Sprintf("ამ მონაკვეთზე, მძღოლები, შედარებით ნელა - <strong>%s</strong> მოძრაობენ, რაც ნაკლებად საფრთხის შემცველია ბავშვისთვის %s გადაადგილებისას.", speedText, modeLabel)
	case *avg <= 50:
		return "moderate", fmt.Sprintf("აღნიშნულ მარშრუტზე, მძღოლები, საშუალოდ <strong>%s სიჩქარით</strong> გადაადგილდებიან. არსებობს მომეტებული საფრთხე აქ ბავშვთან ერთად %s გადაადგილებისას.", speedText, modeLabel)
	default:
		return "fast", fmt.Sprintf("ეს მონაკვეთი გამოირჩევა განსაკუთრებით სახიფათო საავტომობილო მოძრაობითა და მაღალი სიჩქარით <strong>%s</strong> შეადგენს. ეს გარემოება არასახარბიელო პირობებს ქმნის ბავშვთან ერთად %s გადაადგილებისას.", speedText, modeLabel)
	}
}

// CrashDataMissingMessage заменяет оценку ДТП, пока датасет ДТП не загружен
const CrashDataMissingMessage = "ავარიების მონაცემები ჯერ არ არის ჩატვირთული, მძიმე შემთხვევების შეფასება შეუძლებელია."

func crashMessage(severe int, prob float64) string {
	switch {
	case severe == 0:
		return "ამ არეალში, გასულ წელს, მძიმე შემთხვევები, სხეულის დაზიანებით, არ დაფიქსირებულა."
	case prob == 0:
		return "მონაცემები არასაკმარისია მძიმე შემთხვევების ალბათობის შეფასებისთვის."
	default:
		return fmt.Sprintf("ამ არეალში, გასულ წელს, <strong>%d</strong> შემთხვევა დაფიქსირდა, სხეულის დაზიანებით. მძიმე შემთხვევების განმეორების ალბათობა <strong>%s</strong> შეადგენს ყოველ ერთ კილომეტრზე.",
			severe, strconv.FormatFloat(prob, 'f', 2, 64))
	}
}

// DangerousStretches суммирует длину опасных участков и самый длинный непрерывный отрезок
func DangerousStretches(segments []domain.RouteSegment, distanceMeters, threshold float64) domain.DangerousStretch {
	var dangerous, current, longest float64
	for _, seg := range segments {
		if seg.WeightedCount >= threshold {
			dangerous += seg.LengthMeters
			current += seg.LengthMeters
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}

	result := domain.DangerousStretch{
		TotalKm:   roundTo(dangerous/1000, 2),
		LongestKm: roundTo(longest/1000, 2),
		Safe:      dangerous == 0,
	}
	if distanceMeters > 0 {
		result.Percent = roundTo(dangerous/distanceMeters*100, 1)
	}

	if result.Safe {
		result.Message = "მარშრუტი შედარებით უსაფრთხოა"
	} else {
		result.Message = fmt.Sprintf("სახიფათო მონაკვეთები: სულ <strong>%.2f კმ</strong> (მარშრუტის <strong>%.1f%%</strong>), უგრძესი მონაკვეთი: <strong>%.2f კმ</strong>",
			result.TotalKm, result.Percent, result.LongestKm)
	}
	return result
}

// SegmentsFeatureCollection - участки маршрута как GeoJSON для раскраски на карте
func SegmentsFeatureCollection(segments []domain.RouteSegment) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, seg := range segments {
		f := geojson.NewFeature(orb.LineString{seg.Coordinates[0].Orb(), seg.Coordinates[1].Orb()})
		f.Properties["accidentCount"] = seg.AccidentCount
		f.Properties["weightedCount"] = seg.WeightedCount
		f.Properties["color"] = seg.Color
		f.Properties["length_m"] = roundTo(seg.LengthMeters, 1)
		fc.Append(f)
	}
	return fc
}

// AnalyzeRoute собирает отчёт об опасности маршрута по датасету ДТП
func AnalyzeRoute(route *domain.Route, mode domain.TravelMode, accidents []domain.AccidentRecord, params RouteParams) *domain.RouteReport {
	params = params.withDefaults()

	segments := SegmentDensity(route.Geometry, accidents, params.BufferMeters)

	buffer := NewRouteBuffer(route.Geometry, params.BufferMeters)
	severe, light := 0, 0
	for _, a := range accidents {
		if !buffer.Contains(a.Location) {
			continue
		}
		if a.Severity == domain.SeveritySevere {
			severe++
		} else {
			light++
		}
	}

	avgSpeed := AverageSpeed(route.MaxSpeedsKmh)
	prob := SevereCrashProbability(severe, route.DistanceMeters, avgSpeed)
	level, speedMsg := speedAssessment(avgSpeed, mode)

	distanceKm := roundTo(route.DistanceMeters/1000, 1)
	durationMin := int(math.Round(route.DurationSeconds / 60))

	return &domain.RouteReport{
		Mode:                   mode,
		ModeLabel:              mode.Label(),
		DistanceKm:             distanceKm,
		DurationMin:            durationMin,
		AverageSpeedKmh:        avgSpeed,
		SpeedLevel:             level,
		SpeedMessage:           speedMsg,
		SevereCrashes:          severe,
		LightCrashes:           light,
		SevereCrashProbability: prob,
		ProbabilityColor:       ProbabilityColor(prob),
		CrashMessage:           crashMessage(severe, prob),
		Summary: fmt.Sprintf("ამ მანძილის <strong>(%.1f კმ)</strong> %s გავლას, <strong>%d</strong> წთ დასჭირდება. %s",
			distanceKm, mode.Label(), durationMin, speedMsg),
		Segments:        segments,
		SegmentsGeoJSON: SegmentsFeatureCollection(segments),
		Dangerous:       DangerousStretches(segments, route.DistanceMeters, params.DangerousWeight),
	}
}

func roundTo(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}
