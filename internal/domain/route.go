package domain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// TravelMode - профиль передвижения Mapbox
type TravelMode string

const (
	ModeWalking TravelMode = "walking"
	ModeDriving TravelMode = "driving"
	ModeCycling TravelMode = "cycling"
)

func (m TravelMode) Valid() bool {
	switch m {
	case ModeWalking, ModeDriving, ModeCycling:
		return true
	}
	return false
}

// Label - способ передвижения на грузинском
func (m TravelMode) Label() string {
	switch m {
	case ModeDriving:
		return "მანქანით"
	case ModeCycling:
		return "ველოსიპედით"
	default:
		return "ფეხით"
	}
}

// Route - маршрут Directions API
type Route struct {
	Geometry        orb.LineString `json:"-"`
	DistanceMeters  float64        `json:"distance_m"`
	DurationSeconds float64        `json:"duration_s"`
	// MaxSpeedsKmh - известные ограничения скорости по участкам, уже в км/ч
	MaxSpeedsKmh []float64 `json:"max_speeds_kmh,omitempty"`
}

// RouteSegment - пара соседних вершин маршрута с плотностью ДТП в буфере
type RouteSegment struct {
	Coordinates   [2]GeoPoint `json:"coordinates"`
	AccidentCount int         `json:"accident_count"`
	WeightedCount float64     `json:"weighted_count"`
	LengthMeters  float64     `json:"length_m"`
	Color         string      `json:"color"`
}

// DangerousStretch - участки с взвешенной плотностью выше порога
type DangerousStretch struct {
	TotalKm   float64 `json:"total_km"`
	Percent   float64 `json:"percent"`
	LongestKm float64 `json:"longest_km"`
	Safe      bool    `json:"safe"`
	Message   string  `json:"message"`
}

// RouteReport - результат анализа маршрута
type RouteReport struct {
	Mode                   TravelMode                 `json:"mode"`
	ModeLabel              string                     `json:"mode_label"`
	DistanceKm             float64                    `json:"distance_km"`
	DurationMin            int                        `json:"duration_min"`
	AverageSpeedKmh        *float64                   `json:"average_speed_kmh"`
	SpeedLevel             string                     `json:"speed_level"`
	SpeedMessage           string                     `json:"speed_message"`
	SevereCrashes          int                        `json:"severe_crashes"`
	LightCrashes           int                        `json:"light_crashes"`
	SevereCrashProbability float64                    `json:"severe_crash_probability"`
	ProbabilityColor       string                     `json:"probability_color"`
	CrashMessage           string                     `json:"crash_message"`
	CrashDataLoaded        bool                       `json:"crash_data_loaded"`
	Summary                string                     `json:"summary"`
	Segments               []RouteSegment             `json:"segments"`
	SegmentsGeoJSON        *geojson.FeatureCollection `json:"segments_geojson"`
	Dangerous              DangerousStretch           `json:"dangerous"`
}

// Isochrone - полигон достижимости за заданное время
type Isochrone struct {
	Mode     TravelMode   `json:"mode"`
	Minutes  int          `json:"minutes"`
	Geometry orb.Geometry `json:"-"`
}
