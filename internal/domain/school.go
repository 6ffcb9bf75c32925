package domain

// AccessStatus - нормализованное состояние элемента адаптированной инфраструктуры
type AccessStatus string

const (
	AccessGood         AccessStatus = "Good"
	AccessFair         AccessStatus = "Fair"
	AccessBad          AccessStatus = "Bad"
	AccessDamaged      AccessStatus = "Damaged"
	AccessDoesNotExist AccessStatus = "Does not exist"
	AccessUnknown      AccessStatus = "NA"
)

// AccessStatuses - порядок вывода статусов в сводках
var AccessStatuses = []AccessStatus{
	AccessGood,
	AccessFair,
	AccessBad,
	AccessDamaged,
	AccessDoesNotExist,
	AccessUnknown,
}

// SchoolFeatures - фиксированный набор признаков школы; nil означает "неизвестно"
type SchoolFeatures struct {
	Ramp          AccessStatus `json:"ramp"`
	Lift          AccessStatus `json:"lift"`
	AdaptedWC     AccessStatus `json:"adapted_wc"`
	Condition     string       `json:"condition,omitempty"`
	Students      *float64     `json:"students"`
	Occupancy     *float64     `json:"occupancy"`
	UrgentCost    *float64     `json:"urgent_cost"`
	NonUrgentCost *float64     `json:"non_urgent_cost"`
	LongTermCost  *float64     `json:"long_term_cost"`
}

type School struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Location   GeoPoint     `json:"location"`
	Properties TaggedRecord `json:"properties,omitempty"`
}

type Kindergarten struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Location   GeoPoint     `json:"location"`
	Properties TaggedRecord `json:"properties,omitempty"`
}
