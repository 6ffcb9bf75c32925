// Package analysis содержит чистые функции анализа: извлечение признаков,
// взвешенные оценки, пространственные фильтры и генерацию текста сводок.
package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/urbanyx-service/internal/domain"
)

// Synonyms - упорядоченный список вариантов имени ключа; новые варианты добавляются в конец
type Synonyms []string

var (
	RampKeys          = Synonyms{"Ramp", "ramp", "რამპა", "პანდუსი"}
	LiftKeys          = Synonyms{"Adapted elevator", "adapted_elevator", "elevator", "ლიფტი"}
	AdaptedWCKeys     = Synonyms{"Adapted WC", "adapted_wc", "WC", "ტუალეტი"}
	ConditionKeys     = Synonyms{"condition"}
	StudentsKeys      = Synonyms{"students"}
	OccupancyKeys     = Synonyms{"occupancy"}
	UrgentCostKeys    = Synonyms{"urgent_cost"}
	NonUrgentCostKeys = Synonyms{"non_urg_cost"}
	LongTermCostKeys  = Synonyms{"long_cost"}
	NameKeys          = Synonyms{"name", "Name", "name:ka", "სახელი", "title"}
)

// Lookup возвращает первое присутствующее непустое значение по списку синонимов
func Lookup(record domain.TaggedRecord, keys Synonyms) (any, bool) {
	if record == nil {
		return nil, false
	}
	for _, key := range keys {
		v, ok := record[key]
		if !ok || v == nil {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// LookupString - Lookup с приведением значения к строке
func LookupString(record domain.TaggedRecord, keys Synonyms) (string, bool) {
	v, ok := Lookup(record, keys)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(stringify(v)), true
}

// LookupNumber - Lookup с мягким разбором числа
func LookupNumber(record domain.TaggedRecord, keys Synonyms) *float64 {
	v, ok := Lookup(record, keys)
	if !ok {
		return nil
	}
	return ParseNumber(v)
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// ParseNumber разбирает число из значения любого типа; нечисловое значение даёт nil.
// Для строк берётся ведущий числовой префикс: "12.5 ", "3+" -> 12.5, 3.
func ParseNumber(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		prefix := numericPrefix(strings.TrimSpace(t))
		if prefix == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(prefix, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ParseInt - целая часть ведущего числа ("3+" -> 3, "4.5" -> 4)
func ParseInt(v any) *int {
	f := ParseNumber(v)
	if f == nil {
		return nil
	}
	n := int(math.Trunc(*f))
	return &n
}

func numericPrefix(s string) string {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		frac := end + 1
		for frac < len(s) && s[frac] >= '0' && s[frac] <= '9' {
			frac++
		}
		if frac > end+1 {
			digits += frac - end - 1
			end = frac
		} else if digits > 0 {
			end++
		}
	}
	if digits == 0 {
		return ""
	}
	return strings.TrimSuffix(s[:end], ".")
}
