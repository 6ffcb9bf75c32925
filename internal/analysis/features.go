package analysis

import (
	"strings"

	"github.com/urbanyx-service/internal/domain"
)

var accessStatusMap = map[string]domain.AccessStatus{
	"კარგი":             domain.AccessGood,
	"დამაკმაყოფილებელი": domain.AccessFair,
	"ცუდი":              domain.AccessBad,
	"დაზიანებული":       domain.AccessDamaged,
	"შესაცვლელი":        domain.AccessDamaged,
	"არ აქვს":           domain.AccessDoesNotExist,
	"არ არსებობს":       domain.AccessDoesNotExist,

	"good":           domain.AccessGood,
	"fair":           domain.AccessFair,
	"bad":            domain.AccessBad,
	"damaged":        domain.AccessDamaged,
	"does not exist": domain.AccessDoesNotExist,
	"replacement":    domain.AccessDamaged,
	"na":             domain.AccessUnknown,
}

// NormalizeAccessStatus приводит грузинские и английские варианты к AccessStatus
func NormalizeAccessStatus(v any) domain.AccessStatus {
	if v == nil {
		return domain.AccessUnknown
	}
	s := strings.TrimSpace(stringify(v))
	if s == "" {
		return domain.AccessUnknown
	}
	if status, ok := accessStatusMap[strings.ToLower(s)]; ok {
		return status
	}
	if status, ok := accessStatusMap[s]; ok {
		return status
	}
	return domain.AccessUnknown
}

// ExtractSchoolFeatures строит признаки школы из колонок опроса
func ExtractSchoolFeatures(record domain.TaggedRecord) domain.SchoolFeatures {
	f := domain.SchoolFeatures{
		Ramp:          domain.AccessUnknown,
		Lift:          domain.AccessUnknown,
		AdaptedWC:     domain.AccessUnknown,
		Students:      LookupNumber(record, StudentsKeys),
		Occupancy:     LookupNumber(record, OccupancyKeys),
		UrgentCost:    LookupNumber(record, UrgentCostKeys),
		NonUrgentCost: LookupNumber(record, NonUrgentCostKeys),
		LongTermCost:  LookupNumber(record, LongTermCostKeys),
	}
	if v, ok := Lookup(record, RampKeys); ok {
		f.Ramp = NormalizeAccessStatus(v)
	}
	if v, ok := Lookup(record, LiftKeys); ok {
		f.Lift = NormalizeAccessStatus(v)
	}
	if v, ok := Lookup(record, AdaptedWCKeys); ok {
		f.AdaptedWC = NormalizeAccessStatus(v)
	}
	if s, ok := LookupString(record, ConditionKeys); ok {
		f.Condition = s
	}
	return f
}

type tagMatch struct {
	key   string
	value string
}

// presenceRule: совпадение equals или "да" во flags - есть; "нет" во flags - нет; иначе неизвестно
type presenceRule struct {
	equals []tagMatch
	flags  []string
	field  func(*domain.PlaygroundFeatures) *domain.Presence
}

var yesValues = map[string]bool{"yes": true, "true": true, "1": true, "designated": true}

var noValues = map[string]bool{"no": true, "none": true, "false": true, "0": true, "limited": true}

var safeSurfaces = map[string]bool{"sand": true, "grass": true, "woodchips": true, "rubber": true, "tartan": true}

var playgroundRules = []presenceRule{
	{
		equals: []tagMatch{{"playground", "swing"}},
		flags:  []string{"playground:swing"},
		field:  func(f *domain.PlaygroundFeatures) *domain.Presence { return &f.Swing },
	},
	{
		equals: []tagMatch{{"playground", "slide"}},
		flags:  []string{"playground:slide"},
		field:  func(f *domain.PlaygroundFeatures) *domain.Presence { return &f.Slide },
	},
	{
		equals: []tagMatch{{"playground", "climbingframe"}},
		flags:  []string{"playground:climbing_frame"},
		field:  func(f *domain.PlaygroundFeatures) *domain.Presence { return &f.ClimbingFrame },
	},
	{
		equals: []tagMatch{{"playground", "sandpit"}},
		flags:  []string{"playground:sandpit"},
		field:  func(f *domain.PlaygroundFeatures) *domain.Presence { return &f.Sandbox },
	},
	{
		equals: []tagMatch{{"playground", "seesaw"}},
		flags:  []string{"playground:seesaw"},
		field:  func(f *domain.PlaygroundFeatures) *domain.Presence { return &f.Seesaw },
	},
	{
		equals: []tagMatch{{"playground", "springy"}},
		flags:  []string{"playground:springy"},
		field:  func(f *domain.PlaygroundFeatures) *domain.Presence { return &f.SpringRider },
	},
	{
		equals: []tagMatch{{"playground", "structure"}},
		flags:  []string{"playground:structure"},
		field:  func(f *domain.PlaygroundFeatures) *domain.Presence { return &f.Structure },
	},
	{
		equals: []tagMatch{{"barrier", "fence"}},
		flags:  []string{"fence"},
		field:  func(f *domain.PlaygroundFeatures) *domain.Presence { return &f.Fence },
	},
	{
		flags: []string{"lit"},
		field: func(f *domain.PlaygroundFeatures) *domain.Presence { return &f.Lighting },
	},
	{
		equals: []tagMatch{{"amenity", "bench"}},
		flags:  []string{"bench"},
		field:  func(f *domain.PlaygroundFeatures) *domain.Presence { return &f.Seating },
	},
	{
		flags: []string{"shelter", "covered"},
		field: func(f *domain.PlaygroundFeatures) *domain.Presence { return &f.Shelter },
	},
	{
		equals: []tagMatch{{"amenity", "toilets"}},
		flags:  []string{"toilets"},
		field:  func(f *domain.PlaygroundFeatures) *domain.Presence { return &f.Toilet },
	},
	{
		equals: []tagMatch{{"amenity", "drinking_water"}},
		flags:  []string{"drinking_water"},
		field:  func(f *domain.PlaygroundFeatures) *domain.Presence { return &f.Water },
	},
	{
		flags: []string{"wheelchair"},
		field: func(f *domain.PlaygroundFeatures) *domain.Presence { return &f.Wheelchair },
	},
}

func (r presenceRule) evaluate(tags map[string]string) domain.Presence {
	for _, m := range r.equals {
		if tags[m.key] == m.value {
			return domain.PresencePresent
		}
	}
	result := domain.PresenceUnknown
	for _, key := range r.flags {
		v := strings.ToLower(strings.TrimSpace(tags[key]))
		switch {
		case yesValues[v]:
			return domain.PresencePresent
		case noValues[v]:
			result = domain.PresenceAbsent
		}
	}
	return result
}

// ExtractPlaygroundFeatures строит признаки площадки из OSM-тегов
func ExtractPlaygroundFeatures(tags map[string]string) domain.PlaygroundFeatures {
	if tags == nil {
		tags = map[string]string{}
	}
	f := domain.PlaygroundFeatures{
		Surface:     tags["surface"],
		MinAge:      parseAge(tags["min_age"]),
		MaxAge:      parseAge(tags["max_age"]),
		Name:        tags["name"],
		Operator:    tags["operator"],
		Access:      tags["access"],
		Description: tags["description"],
	}
	if f.Access == "" {
		f.Access = "public"
	}
	f.BabyFriendly = tags["playground:baby"] == "yes" || strings.TrimSpace(tags["min_age"]) == "0"

	for _, rule := range playgroundRules {
		*rule.field(&f) = rule.evaluate(tags)
	}

	if surface := strings.ToLower(strings.TrimSpace(tags["surface"])); surface != "" {
		if safeSurfaces[surface] {
			f.SafeSurface = domain.PresencePresent
		} else {
			f.SafeSurface = domain.PresenceAbsent
		}
	}

	return f
}

func parseAge(raw string) *int {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return ParseInt(raw)
}
