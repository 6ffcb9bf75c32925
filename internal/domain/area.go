package domain

import "github.com/paulmach/orb/geojson"

// OccupancyDistribution: <70 недогружены, 70-90 оптимально, >90 перегружены
type OccupancyDistribution struct {
	Underutilized int `json:"underutilized"`
	Optimal       int `json:"optimal"`
	Overcrowded   int `json:"overcrowded"`
}

type OccupancyStatus struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

type ConditionCount struct {
	Condition string `json:"condition"`
	Count     int    `json:"count"`
	Percent   int    `json:"percent"`
	Color     string `json:"color"`
}

type InvestmentSummary struct {
	Urgent       float64 `json:"urgent"`
	NonUrgent    float64 `json:"non_urgent"`
	LongTerm     float64 `json:"long_term"`
	Total        float64 `json:"total"`
	AvgPerSchool float64 `json:"avg_per_school"`
}

// SchoolScore - признаки и оценка доступности одной школы
type SchoolScore struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Location GeoPoint       `json:"location"`
	Features SchoolFeatures `json:"features"`
	Score    Score          `json:"score"`
}

// FeatureStat - распределение статусов одного элемента (пандусы, лифты, WC)
type FeatureStat struct {
	Key            string               `json:"key"`
	Label          string               `json:"label"`
	Counts         map[AccessStatus]int `json:"counts"`
	QualityPercent float64              `json:"quality_percent"`
}

// AggregateAccessibility - сводная доступность по всем школам области
type AggregateAccessibility struct {
	OverallScore             int                   `json:"overall_score"`
	Category                 ScoreCategory         `json:"category"`
	CategoryInfo             CategoryInfo          `json:"category_info"`
	TotalMissing             int                   `json:"total_missing"`
	TotalGood                int                   `json:"total_good"`
	EstimatedFullyAccessible int                   `json:"estimated_fully_accessible"`
	EstimatedNonAccessible   int                   `json:"estimated_non_accessible"`
	CategoryDistribution     map[ScoreCategory]int `json:"category_distribution"`
	ValidScoresCount         int                   `json:"valid_scores_count"`
	TotalSchools             int                   `json:"total_schools"`
}

// SchoolSummary - агрегаты по школам внутри полигона
type SchoolSummary struct {
	TotalSchools          int                    `json:"total_schools"`
	TotalStudents         float64                `json:"total_students"`
	SchoolsWithData       int                    `json:"schools_with_data"`
	MedianOccupancy       int                    `json:"median_occupancy"`
	AvgOccupancy          int                    `json:"avg_occupancy"`
	AvgStudentsPerSchool  int                    `json:"avg_students_per_school"`
	OccupancyDistribution OccupancyDistribution  `json:"occupancy_distribution"`
	OccupancyStatus       OccupancyStatus        `json:"occupancy_status"`
	Conditions            []ConditionCount       `json:"conditions"`
	UnknownConditions     int                    `json:"unknown_conditions"`
	Investment            InvestmentSummary      `json:"investment"`
	Schools               []SchoolScore          `json:"schools"`
	Features              []FeatureStat          `json:"features"`
	Accessibility         AggregateAccessibility `json:"accessibility"`
	Narrative             string                 `json:"narrative"`
}

// AccidentStats - ДТП внутри полигона
type AccidentStats struct {
	Total         int                        `json:"total"`
	Severe        int                        `json:"severe"`
	Light         int                        `json:"light"`
	SeverePercent float64                    `json:"severe_percent"`
	LightPercent  float64                    `json:"light_percent"`
	Message       string                     `json:"message"`
	GeoJSON       *geojson.FeatureCollection `json:"geojson"`
}

// AreaReport - анализ зоны достижимости вокруг выбранной точки
type AreaReport struct {
	Center            GeoPoint         `json:"center"`
	Mode              TravelMode       `json:"mode,omitempty"`
	Minutes           int              `json:"minutes,omitempty"`
	Polygon           *geojson.Feature `json:"polygon"`
	Accidents         AccidentStats    `json:"accidents"`
	KindergartenCount int              `json:"kindergarten_count"`
	Schools           *SchoolSummary   `json:"schools"`
	SchoolsMessage    string           `json:"schools_message,omitempty"`
}
