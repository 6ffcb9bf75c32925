package dto

import (
	"github.com/urbanyx-service/internal/domain"
)

// RouteAnalyzeResponse - отчёт по маршруту и токен запроса
type RouteAnalyzeResponse struct {
	RequestID string              `json:"request_id"`
	Report    *domain.RouteReport `json:"report"`
}

// AreaAnalyzeResponse - отчёт по зоне и токен запроса
type AreaAnalyzeResponse struct {
	RequestID string             `json:"request_id"`
	Report    *domain.AreaReport `json:"report"`
}

// StreetViewResponse - выбранные снимки вокруг точки
type StreetViewResponse struct {
	Images  []domain.StreetImage `json:"images"`
	Count   int                  `json:"count"`
	Message string               `json:"message,omitempty"`
}

// KindergartenResponse - детсад без исходных свойств
type KindergartenResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Location domain.GeoPoint `json:"location"`
}

type KindergartenListResponse struct {
	Kindergartens []KindergartenResponse `json:"kindergartens"`
	Total         int                    `json:"total"`
}

// DatasetStatusResponse - состояние загруженных датасетов
type DatasetStatusResponse struct {
	Ready    bool                   `json:"ready"`
	Datasets []domain.DatasetStatus `json:"datasets"`
}

// SchoolScoreResponse - признаки и оценка доступности школы
type SchoolScoreResponse struct {
	Features     domain.SchoolFeatures `json:"features"`
	Score        domain.Score          `json:"score"`
	CategoryInfo domain.CategoryInfo   `json:"category_info"`
}

// PlaygroundScoreResponse - признаки и оценка площадки
type PlaygroundScoreResponse struct {
	Features     domain.PlaygroundFeatures `json:"features"`
	Score        domain.Score              `json:"score"`
	CategoryInfo domain.CategoryInfo       `json:"category_info"`
	QualityLabel string                    `json:"quality_label"`
}

// HealthResponse - ответ health check
type HealthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Datasets bool   `json:"datasets_ready"`
}
