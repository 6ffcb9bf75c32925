package dto

import (
	"github.com/paulmach/orb/geojson"

	"github.com/urbanyx-service/internal/domain"
)

// Point - координаты точки
type Point struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lon float64 `json:"lon" validate:"longitude"`
}

func (p Point) GeoPoint() domain.GeoPoint {
	return domain.GeoPoint{Lat: p.Lat, Lon: p.Lon}
}

// RouteAnalyzeRequest - запрос на анализ опасности маршрута
type RouteAnalyzeRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,max=128"`
	From      Point  `json:"from"`
	To        Point  `json:"to"`
	Mode      string `json:"mode" validate:"required,travel_mode"`
}

// AreaAnalyzeRequest - запрос на анализ зоны достижимости; polygon заменяет изохрону
type AreaAnalyzeRequest struct {
	SessionID string            `json:"session_id" validate:"omitempty,max=128"`
	Center    Point             `json:"center"`
	Mode      string            `json:"mode" validate:"omitempty,travel_mode"`
	Minutes   int               `json:"minutes" validate:"omitempty,min=1,max=60"`
	Polygon   *geojson.Geometry `json:"polygon,omitempty" swaggertype:"object"`
}

// PlaygroundRequest - запрос площадок вокруг точки
type PlaygroundRequest struct {
	Lat    float64 `json:"lat" validate:"latitude"`
	Lon    float64 `json:"lon" validate:"longitude"`
	Radius int     `json:"radius" validate:"omitempty,min=10,max=5000"` // meters
}

// StreetViewRequest - запрос уличных снимков вокруг точки
type StreetViewRequest struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lon float64 `json:"lon" validate:"longitude"`
}

// KindergartenListRequest - поиск детсадов по названию
type KindergartenListRequest struct {
	Query string `json:"q" validate:"omitempty,max=200"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=500"`
}

// SchoolScoreRequest - произвольная запись опроса школы
type SchoolScoreRequest struct {
	Properties map[string]interface{} `json:"properties" validate:"required"`
}

// PlaygroundScoreRequest - OSM-теги площадки
type PlaygroundScoreRequest struct {
	Tags map[string]string `json:"tags" validate:"required"`
}
