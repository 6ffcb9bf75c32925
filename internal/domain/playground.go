package domain

// Presence - трёхзначный признак: неизвестно / есть / нет
type Presence int8

const (
	PresenceUnknown Presence = iota
	PresencePresent
	PresenceAbsent
)

func (p Presence) String() string {
	switch p {
	case PresencePresent:
		return "yes"
	case PresenceAbsent:
		return "no"
	default:
		return "unknown"
	}
}

func (p Presence) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Presence) UnmarshalText(text []byte) error {
	switch string(text) {
	case "yes":
		*p = PresencePresent
	case "no":
		*p = PresenceAbsent
	default:
		*p = PresenceUnknown
	}
	return nil
}

// PlaygroundFeatures - признаки детской площадки, извлечённые из OSM-тегов
type PlaygroundFeatures struct {
	// Оборудование
	Swing         Presence `json:"swing"`
	Slide         Presence `json:"slide"`
	ClimbingFrame Presence `json:"climbing_frame"`
	Sandbox       Presence `json:"sandbox"`
	Seesaw        Presence `json:"seesaw"`
	SpringRider   Presence `json:"spring_rider"`
	Structure     Presence `json:"structure"`

	// Безопасность
	Fence       Presence `json:"fence"`
	SafeSurface Presence `json:"safe_surface"`
	Lighting    Presence `json:"lighting"`
	Seating     Presence `json:"seating"`

	// Удобства
	Shelter    Presence `json:"shelter"`
	Toilet     Presence `json:"toilet"`
	Water      Presence `json:"water"`
	Wheelchair Presence `json:"wheelchair"`

	Surface      string `json:"surface,omitempty"`
	MinAge       *int   `json:"min_age"`
	MaxAge       *int   `json:"max_age"`
	BabyFriendly bool   `json:"baby_friendly"`
	Name         string `json:"name,omitempty"`
	Operator     string `json:"operator,omitempty"`
	Access       string `json:"access"`
	Description  string `json:"description,omitempty"`
}

// OSMElement - узел или путь из Overpass; для путей Location - среднее по узлам
type OSMElement struct {
	ID       int64             `json:"id"`
	Type     string            `json:"type"`
	Location GeoPoint          `json:"location"`
	Tags     map[string]string `json:"tags"`
}

// PlaygroundAnalysis - оценка одной площадки
type PlaygroundAnalysis struct {
	ID           int64              `json:"id"`
	Type         string             `json:"type"`
	Location     GeoPoint           `json:"location"`
	Distance     float64            `json:"distance_m"`
	Features     PlaygroundFeatures `json:"features"`
	Score        Score              `json:"score"`
	QualityLabel string             `json:"quality_label"`
	Tags         map[string]string  `json:"tags,omitempty"`
}

// PlaygroundReport - площадки вокруг точки и сводка по ним
type PlaygroundReport struct {
	RadiusMeters    int                  `json:"radius_m"`
	Playgrounds     []PlaygroundAnalysis `json:"playgrounds"`
	Count           int                  `json:"count"`
	ClosestDistance *float64             `json:"closest_distance_m"`
	AverageScore    *int                 `json:"average_score"`
	ExcellentCount  int                  `json:"excellent_count"`
	Messages        []string             `json:"messages"`
}
