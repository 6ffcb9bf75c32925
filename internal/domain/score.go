package domain

import "strings"

type ScoreCategory string

const (
	CategoryPerfect          ScoreCategory = "perfect"
	CategoryGood             ScoreCategory = "good"
	CategoryFair             ScoreCategory = "fair"
	CategoryPoor             ScoreCategory = "poor"
	CategoryCritical         ScoreCategory = "critical"
	CategoryNonExistent      ScoreCategory = "non_existent"
	CategoryGoodWithGaps     ScoreCategory = "good_with_gaps"
	CategoryFairWithGaps     ScoreCategory = "fair_with_gaps"
	CategoryPoorWithGaps     ScoreCategory = "poor_with_gaps"
	CategoryCriticalWithGaps ScoreCategory = "critical_with_gaps"
	CategoryInsufficientData ScoreCategory = "insufficient_data"
)

// HasGaps - категория построена на неполных данных
func (c ScoreCategory) HasGaps() bool {
	return strings.HasSuffix(string(c), "_with_gaps")
}

// Score - оценка 0..100; Value == nil только если все признаки неизвестны
type Score struct {
	Value        *int          `json:"value"`
	Category     ScoreCategory `json:"category"`
	UnknownCount int           `json:"unknown_count"`
}

// CategoryInfo - отображаемые атрибуты категории
type CategoryInfo struct {
	Label       string `json:"label"`
	Color       string `json:"color"`
	Description string `json:"description"`
}
