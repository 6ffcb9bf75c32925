package domain

import "strings"

// Severity - тяжесть ДТП
type Severity string

const (
	SeverityLight  Severity = "light"
	SeveritySevere Severity = "severe"
)

// Label - подпись категории на грузинском
func (s Severity) Label() string {
	if s == SeveritySevere {
		return "მძიმე"
	}
	return "მსუბუქი"
}

// AccidentRecord - ДТП из датасета, только для чтения после загрузки
type AccidentRecord struct {
	ID       string   `json:"id,omitempty"`
	Location GeoPoint `json:"location"`
	Severity Severity `json:"severity"`
	Weight   int      `json:"weight"`
}

// ClassifyCrash: injury - тяжёлое (вес 2), всё остальное - лёгкое (вес 1)
func ClassifyCrash(crashType string) (Severity, int) {
	if strings.EqualFold(strings.TrimSpace(crashType), "injury") {
		return SeveritySevere, 2
	}
	return SeverityLight, 1
}
