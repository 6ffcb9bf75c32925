package domain

import "time"

// DatasetKind - один из удалённых датасетов
type DatasetKind string

const (
	DatasetKindergartens DatasetKind = "kindergartens"
	DatasetAccidents     DatasetKind = "accidents"
	DatasetSchools       DatasetKind = "schools"
)

var DatasetKinds = []DatasetKind{DatasetKindergartens, DatasetAccidents, DatasetSchools}

// DatasetSnapshot - неизменяемый снимок загруженных датасетов; заменяется целиком
type DatasetSnapshot struct {
	Kindergartens []Kindergarten
	Accidents     []AccidentRecord
	Schools       []School
	LoadedAt      map[DatasetKind]time.Time
}

// Loaded - был ли датасет хотя бы раз успешно загружен
func (s *DatasetSnapshot) Loaded(kind DatasetKind) bool {
	if s == nil {
		return false
	}
	_, ok := s.LoadedAt[kind]
	return ok
}

func (s *DatasetSnapshot) Count(kind DatasetKind) int {
	if s == nil {
		return 0
	}
	switch kind {
	case DatasetKindergartens:
		return len(s.Kindergartens)
	case DatasetAccidents:
		return len(s.Accidents)
	case DatasetSchools:
		return len(s.Schools)
	}
	return 0
}

type DatasetStatus struct {
	Kind      DatasetKind `json:"kind"`
	Loaded    bool        `json:"loaded"`
	Count     int         `json:"count"`
	LoadedAt  *time.Time  `json:"loaded_at"`
	LastError string      `json:"last_error,omitempty"`
}
