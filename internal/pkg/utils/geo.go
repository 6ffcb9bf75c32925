package utils

import "math"

// EarthRadiusMeters - средний радиус Земли для формулы гаверсинуса
const EarthRadiusMeters = 6371000.0

func toRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// DistanceMeters вычисляет расстояние по большому кругу между двумя точками в метрах
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	lat1Rad := toRad(lat1)
	lat2Rad := toRad(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// BearingDegrees - начальный азимут от первой точки ко второй, в диапазоне [0, 360)
func BearingDegrees(lat1, lon1, lat2, lon2 float64) float64 {
	dLon := toRad(lon2 - lon1)
	lat1Rad := toRad(lat1)
	lat2Rad := toRad(lat2)

	y := math.Sin(dLon) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) -
		math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(dLon)
	bearing := math.Atan2(y, x) * 180.0 / math.Pi

	bearing = math.Mod(bearing+360.0, 360.0)
	if bearing >= 360.0 || bearing < 0 {
		return 0
	}
	return bearing
}

// Cardinal - одна из четырёх сторон света
type Cardinal string

const (
	North Cardinal = "North"
	East  Cardinal = "East"
	South Cardinal = "South"
	West  Cardinal = "West"
)

// CardinalDirection раскладывает азимут по 90-градусным секторам с центром на сторонах света
func CardinalDirection(bearing float64) Cardinal {
	switch {
	case bearing >= 315 || bearing < 45:
		return North
	case bearing < 135:
		return East
	case bearing < 225:
		return South
	default:
		return West
	}
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadius проверяет валидность радиуса поиска в метрах (10 м - 5 км)
func ValidateRadius(radiusMeters int) bool {
	return radiusMeters >= 10 && radiusMeters <= 5000
}
