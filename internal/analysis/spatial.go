package analysis

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/urbanyx-service/internal/domain"
	"github.com/urbanyx-service/internal/pkg/utils"
)

// DefaultBufferMeters - ширина буфера вокруг участка маршрута
const DefaultBufferMeters = 20.0

// шагов на полуокружность капсулы
const capsuleArcSteps = 16

// Contains - точка внутри полигона или мультиполигона; граница считается внутренней
func Contains(area orb.Geometry, p orb.Point) bool {
	switch g := area.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, p)
	case orb.Ring:
		return planar.RingContains(g, p)
	case orb.Collection:
		for _, child := range g {
			if Contains(child, p) {
				return true
			}
		}
	}
	return false
}

// FilterInPolygon возвращает ДТП внутри полигона, входной срез не меняется
func FilterInPolygon(accidents []domain.AccidentRecord, area orb.Geometry) []domain.AccidentRecord {
	result := make([]domain.AccidentRecord, 0)
	if area == nil {
		return result
	}
	bound := area.Bound()
	for _, a := range accidents {
		p := a.Location.Orb()
		if !bound.Contains(p) {
			continue
		}
		if Contains(area, p) {
			result = append(result, a)
		}
	}
	return result
}

// FilterPointsInPolygon - то же для произвольных точек, возвращает индексы попавших
func FilterPointsInPolygon(points []domain.GeoPoint, area orb.Geometry) []int {
	idx := make([]int, 0)
	if area == nil {
		return idx
	}
	bound := area.Bound()
	for i, pt := range points {
		p := pt.Orb()
		if bound.Contains(p) && Contains(area, p) {
			idx = append(idx, i)
		}
	}
	return idx
}

// localProjection - равнопромежуточная проекция в метрах вокруг опорной широты
type localProjection struct {
	lat0, lon0 float64
	kx, ky     float64
}

func newLocalProjection(origin orb.Point) localProjection {
	ky := utils.EarthRadiusMeters * math.Pi / 180.0
	return localProjection{
		lat0: origin.Lat(),
		lon0: origin.Lon(),
		kx:   ky * math.Cos(origin.Lat()*math.Pi/180.0),
		ky:   ky,
	}
}

func (p localProjection) forward(pt orb.Point) (float64, float64) {
	return (pt.Lon() - p.lon0) * p.kx, (pt.Lat() - p.lat0) * p.ky
}

func (p localProjection) inverse(x, y float64) orb.Point {
	return orb.Point{p.lon0 + x/p.kx, p.lat0 + y/p.ky}
}

// SegmentBuffer строит капсулу шириной bufferMeters вокруг отрезка a-b
func SegmentBuffer(a, b orb.Point, bufferMeters float64) orb.Polygon {
	mid := orb.Point{(a.Lon() + b.Lon()) / 2, (a.Lat() + b.Lat()) / 2}
	proj := newLocalProjection(mid)
	ax, ay := proj.forward(a)
	bx, by := proj.forward(b)

	theta := math.Atan2(by-ay, bx-ax)
	ring := make(orb.Ring, 0, 2*(capsuleArcSteps+1)+1)

	// дуга вокруг b от theta-90 до theta+90, затем вокруг a от theta+90 до theta+270
	for i := 0; i <= capsuleArcSteps; i++ {
		angle := theta - math.Pi/2 + math.Pi*float64(i)/capsuleArcSteps
		ring = append(ring, proj.inverse(bx+bufferMeters*math.Cos(angle), by+bufferMeters*math.Sin(angle)))
	}
	for i := 0; i <= capsuleArcSteps; i++ {
		angle := theta + math.Pi/2 + math.Pi*float64(i)/capsuleArcSteps
		ring = append(ring, proj.inverse(ax+bufferMeters*math.Cos(angle), ay+bufferMeters*math.Sin(angle)))
	}
	ring = append(ring, ring[0])

	return orb.Polygon{ring}
}

// SegmentDensity делит маршрут на пары соседних вершин и считает ДТП в буфере каждой пары.
// Вес 0 у записи считается как 1.
func SegmentDensity(route orb.LineString, accidents []domain.AccidentRecord, bufferMeters float64) []domain.RouteSegment {
	if bufferMeters <= 0 {
		bufferMeters = DefaultBufferMeters
	}
	if len(route) < 2 {
		return []domain.RouteSegment{}
	}

	segments := make([]domain.RouteSegment, 0, len(route)-1)
	for i := 0; i < len(route)-1; i++ {
		a, b := route[i], route[i+1]
		buffer := SegmentBuffer(a, b, bufferMeters)
		bound := buffer.Bound()

		seg := domain.RouteSegment{
			Coordinates:  [2]domain.GeoPoint{domain.PointFromOrb(a), domain.PointFromOrb(b)},
			LengthMeters: utils.DistanceMeters(a.Lat(), a.Lon(), b.Lat(), b.Lon()),
		}
		for _, acc := range accidents {
			p := acc.Location.Orb()
			if !bound.Contains(p) || !planar.PolygonContains(buffer, p) {
				continue
			}
			seg.AccidentCount++
			seg.WeightedCount += float64(accidentWeight(acc))
		}
		seg.Color = RampColor(seg.WeightedCount)
		segments = append(segments, seg)
	}
	return segments
}

func accidentWeight(a domain.AccidentRecord) int {
	if a.Weight <= 0 {
		return 1
	}
	return a.Weight
}

// RouteBuffer - объединение буферов всех участков маршрута
type RouteBuffer struct {
	buffers []orb.Polygon
	bounds  []orb.Bound
	outer   orb.Bound
}

func NewRouteBuffer(route orb.LineString, bufferMeters float64) *RouteBuffer {
	if bufferMeters <= 0 {
		bufferMeters = DefaultBufferMeters
	}
	rb := &RouteBuffer{}
	switch len(route) {
	case 0:
		return rb
	case 1:
		route = orb.LineString{route[0], route[0]}
	}
	for i := 0; i < len(route)-1; i++ {
		buffer := SegmentBuffer(route[i], route[i+1], bufferMeters)
		bound := buffer.Bound()
		if len(rb.buffers) == 0 {
			rb.outer = bound
		} else {
			rb.outer = rb.outer.Union(bound)
		}
		rb.buffers = append(rb.buffers, buffer)
		rb.bounds = append(rb.bounds, bound)
	}
	return rb
}

// Contains - точка попадает хотя бы в один буфер участка
func (rb *RouteBuffer) Contains(pt domain.GeoPoint) bool {
	if rb == nil || len(rb.buffers) == 0 {
		return false
	}
	p := pt.Orb()
	if !rb.outer.Contains(p) {
		return false
	}
	for i, buffer := range rb.buffers {
		if rb.bounds[i].Contains(p) && planar.PolygonContains(buffer, p) {
			return true
		}
	}
	return false
}
