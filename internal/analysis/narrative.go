package analysis

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/urbanyx-service/internal/domain"
)

// Severity - уровень остроты одной из трёх проблем
type Severity string

const (
	SeverityCritical  Severity = "critical"
	SeverityHigh      Severity = "high"
	SeverityModerate  Severity = "moderate"
	SeverityNone      Severity = "none"
	SeverityGood      Severity = "good"
	SeverityExcellent Severity = "excellent"
	SeverityPoor      Severity = "poor"
)

var georgianPrinter = message.NewPrinter(language.Georgian)

// formatInt - целое с разделителями разрядов грузинской локали
func formatInt(v float64) string {
	return georgianPrinter.Sprintf("%d", int64(math.Round(v)))
}

// CrowdingSeverity по доле перегруженных школ, %
func CrowdingSeverity(percent int) Severity {
	switch {
	case percent > 60:
		return SeverityCritical
	case percent > 30:
		return SeverityHigh
	case percent > 0:
		return SeverityModerate
	default:
		return SeverityNone
	}
}

// ConditionSeverity по доле школ в плохом состоянии или под замену, %
func ConditionSeverity(percent int) Severity {
	switch {
	case percent > 50:
		return SeverityCritical
	case percent > 25:
		return SeverityHigh
	case percent > 0:
		return SeverityModerate
	default:
		return SeverityGood
	}
}

// AccessibilitySeverity по сводному индексу доступности
func AccessibilitySeverity(score int) Severity {
	switch {
	case score >= 85:
		return SeverityExcellent
	case score >= 65:
		return SeverityGood
	case score >= 45:
		return SeverityModerate
	case score >= 20:
		return SeverityPoor
	case score > 0:
		return SeverityCritical
	default:
		return SeverityNone
	}
}

// NarrativeInputs - числа, из которых собирается текст
type NarrativeInputs struct {
	OvercrowdedTotal     int
	OvercrowdedPercent   int
	PoorConditionTotal   int
	PoorConditionPercent int
	NeedsReplacement     int
	AccessScore          int
	Crowding             Severity
	Condition            Severity
	Accessibility        Severity
}

// NarrativeInputsFrom вычисляет доли и уровни остроты из сводки
func NarrativeInputsFrom(s *domain.SchoolSummary) NarrativeInputs {
	total := float64(s.TotalSchools)
	replace := conditionCount(s.Conditions, "ჩასანაცვლებელია")
	poor := replace + conditionCount(s.Conditions, "ცუდი")

	in := NarrativeInputs{
		OvercrowdedTotal:   s.OccupancyDistribution.Overcrowded,
		PoorConditionTotal: poor,
		NeedsReplacement:   replace,
		AccessScore:        s.Accessibility.OverallScore,
	}
	if total > 0 {
		in.OvercrowdedPercent = roundHalfUp(float64(in.OvercrowdedTotal) / total * 100)
		in.PoorConditionPercent = roundHalfUp(float64(poor) / total * 100)
	}
	in.Crowding = CrowdingSeverity(in.OvercrowdedPercent)
	in.Condition = ConditionSeverity(in.PoorConditionPercent)
	in.Accessibility = AccessibilitySeverity(in.AccessScore)
	return in
}

// BuildNarrative собирает текст сводки по школам из шаблонных фраз.
// Не все сочетания уровней перечислены: остальные получают общую фразу своей ветки.
func BuildNarrative(s *domain.SchoolSummary) string {
	if s == nil || s.TotalSchools == 0 {
		return ""
	}
	in := NarrativeInputsFrom(s)

	var b strings.Builder
	b.WriteString(buildIntroduction(s.AvgStudentsPerSchool, in.Crowding))
	b.WriteString(buildMainChallenges(in))
	if s.Investment.Total > 0 {
		b.WriteString(buildInvestmentContext(s, in))
	}
	b.WriteString(buildRecommendations(in))
	return b.String()
}

func isSevere(s Severity) bool {
	return s == SeverityCritical || s == SeverityHigh
}

func buildIntroduction(studentsPerSchool int, crowding Severity) string {
	switch {
	case isSevere(crowding):
		return fmt.Sprintf("მონიშნულ არეალში არსებობს მნიშვნელოვანი გამოწვევები საჯარო სკოლების ინფრასტრუქტურის ხარისხთან დაკავშირებით. თითო სკოლაში საშუალოდ <strong>%d</strong> მოსწავლეა დარეგისტრირებული, რაც განაპირობებს აქ არსებული ", studentsPerSchool)
	case crowding == SeverityModerate:
		return fmt.Sprintf("ამ არეალში სკოლები საშუალოდ <strong>%d</strong> მოსწავლეს ემსახურება. ", studentsPerSchool)
	default:
		return fmt.Sprintf("ამ არეალში სკოლების დატვირთულობა ოპტიმალურ დონეზეა - საშუალოდ <strong>%d</strong> მოსწავლე თითო სკოლაზე. ", studentsPerSchool)
	}
}

func buildMainChallenges(in NarrativeInputs) string {
	var b strings.Builder

	switch {
	case in.Crowding == SeverityCritical && in.Condition == SeverityCritical:
		fmt.Fprintf(&b, "გადატვირთულობის კრიტიკულ ზღვარს ემატება შენობების მძიმე მდგომარეობა - %d სკოლა საჭიროებს სრულყოფილ რეაბილიტაციას", in.PoorConditionTotal)
		if in.NeedsReplacement > 0 {
			fmt.Fprintf(&b, ", მათ შორის %d სკოლა სრულ ჩანაცვლებას", in.NeedsReplacement)
		}
		b.WriteString(". ")

	case isSevere(in.Crowding):
		fmt.Fprintf(&b, "<strong>%d სკოლის</strong> მნიშვნელოვან გადატვირთულობას. ", in.OvercrowdedTotal)
		if isSevere(in.Condition) {
			fmt.Fprintf(&b, "ამას ემატება ინფრასტრუქტურული პრობლემები - %d სკოლა საჭიროებს რეაბილიტაციას", in.PoorConditionTotal)
			if in.NeedsReplacement > 0 {
				fmt.Fprintf(&b, ", %d მათგანი კი სრულ ჩანაცვლებას", in.NeedsReplacement)
			}
			b.WriteString(". ")
		} else if in.Condition == SeverityModerate && in.PoorConditionTotal > 0 {
			fmt.Fprintf(&b, "შენობების მდგომარეობა ზოგადად დამაკმაყოფილებელია, თუმცა %d სკოლა მოითხოვს რეაბილიტაციას.", in.PoorConditionTotal)
		}

	case in.Crowding == SeverityModerate:
		if isSevere(in.Condition) {
			fmt.Fprintf(&b, "მართალია, გადატვირთულობა შედარებით შეზღუდულია, მაგრამ ინფრასტრუქტურის მდგომარეობა საყურადღებოა - %d სკოლა საჭიროებს რეაბილიტაციას. ", in.PoorConditionTotal)
		} else {
			b.WriteString("გადატვირთულობის და ინფრასტრუქტურის პრობლემები შედარებით ნაკლებად მწვავედ დგას. ")
		}

	default:
		switch {
		case isSevere(in.Condition):
			fmt.Fprintf(&b, "გადატვირთულობის პრობლემა არ აღინიშნება, თუმცა შენობების მდგომარეობა საგანგაშოა - %d სკოლა საჭიროებს რეაბილიტაციას. ", in.PoorConditionTotal)
		case in.Condition == SeverityModerate:
			b.WriteString("ზოგადად, ინფრასტრუქტურა დამაკმაყოფილებელ მდგომარეობაშია. ")
		default:
			b.WriteString("ინფრასტრუქტურა კარგ მდგომარეობაშია. ")
		}
	}

	b.WriteString(buildAccessibilityInContext(in.Accessibility, in.Condition))
	return b.String()
}

func buildAccessibilityInContext(access, condition Severity) string {
	switch access {
	case SeverityExcellent:
		return "<br>აღსანიშნავია, რომ ფიზიკური მისაწვდომობის თვალსაზრისით კარგი მდგომარეობაა. სკოლების უმეტესობა აღჭურვილია შეზღუდული შესაძლებლობის მქონე მოსწავლეთათვის საჭირო ინფრასტრუქტურით. "
	case SeverityGood:
		return "<br>ამ არეალში ფიზიკური მისაწვდომობის შედარებით კარგი მაჩვენებელია, თუმცა, ინკლუზიური გარემოს გასაუმჯობესებლად, საჭიროა გარკვეული ჩარევები. "
	case SeverityModerate:
		if isSevere(condition) {
			return "<br>ამას ემატება ფიზიკური მისაწვდომობის პრობლემა. სკოლების მნიშვნელოვანი ნაწილი არ არის აღჭურვილი ადაპტირებული პანდუსებით, ლიფტებითა და საპირფარეშოებით. "
		}
		return "თუმცა, მისაწვდომობის თვალსაზრისით სურათი არათანაბარია. საჭიროა მნიშვნელოვანი ინვესტიციები ფიზიკურად ინკლუზიური გარემოს შესაქმნელად. "
	case SeverityPoor:
		return "<br>განსაკუთრებით პრობლემურია ფიზიკური მისაწვდომობის საკითხი, რადგან სკოლების უმრავლესობა არ არის ადაპტირებული შეზღუდული შესაძლებლობის მქონე მოსწავლეებისთვის. ეს სერიოზული გამოწვევაა განათლებაზე თანასწორი ხელმისაწვდომობის კუთხით. "
	case SeverityCritical:
		return "<br>უაღრესად პრობლემურია ფიზიკური მისაწვდომობის საკითხი. მოცემულ არეალში არსებული სკოლების უმეტესობა მიუწვდომელია შეზღუდული მობილობის მქონე მოსწავლეთათვის. საჭიროა დაუყოვნებელი და მასშტაბური ინფრასტრუქტურული ჩარევა ინკლუზიური გარემოს შესაქმნელად. "
	default:
		return "<br>მისაწვდომობის კუთხით, სიტუაცია განსაკუთრებულად კრიტიკულია. არცერთ სკოლას არ აქვს ისეთი ადაპტირებული ინფრასტრუქტურის ისეთი საბაზისო ელემენტები, როგორებიცაა პანდუსები, ლიფტები თუ საპირფარეშოები. აუცილებელია ამ ინფრასტრუქტურის სრულყოფილად შექმნა, რათა მოსწავლეებმა მიიღონ თანაბარი წვდომა განათლებაზე. "
	}
}

func buildInvestmentContext(s *domain.SchoolSummary, in NarrativeInputs) string {
	inv := s.Investment
	urgentPercent := 0
	if inv.Total > 0 {
		urgentPercent = roundHalfUp(inv.Urgent / inv.Total * 100)
	}
	perStudent := 0.0
	if s.TotalStudents > 0 && inv.Urgent > 0 {
		perStudent = math.Round(inv.Urgent / s.TotalStudents)
	}

	critical := 0
	for _, sev := range []Severity{in.Crowding, in.Condition, in.Accessibility} {
		if sev == SeverityCritical {
			critical++
		}
	}

	var b strings.Builder
	switch {
	case critical >= 2:
		b.WriteString("ამ საკითხების მოსაგვარებლად ")
	case in.Crowding == SeverityCritical || in.Condition == SeverityCritical:
		b.WriteString("ამ მძიმე სიტუაციის გამოსასწორებლად ")
	default:
		b.WriteString("სასწავლო გარემოს გასაუმჯობესებლად ")
	}

	fmt.Fprintf(&b, "საჭიროა <strong>%.1f მლნ ₾</strong> ინვესტიცია", inv.Urgent/1000000)
	if urgentPercent > 60 {
		fmt.Fprintf(&b, ", რომლის <strong>%d%%</strong> სასწრაფოა", urgentPercent)
	}
	if perStudent > 0 {
		fmt.Fprintf(&b, " (საშუალოდ <strong>%s ₾</strong> თითო მოსწავლეზე)", formatInt(perStudent))
	}
	b.WriteString(". ")
	return b.String()
}

func severityPoints(s Severity, second Severity) int {
	switch s {
	case SeverityCritical:
		return 3
	case second:
		return 2
	case SeverityModerate:
		return 1
	}
	return 0
}

// SeverityScore - сумма баллов остроты 0..9
func SeverityScore(in NarrativeInputs) int {
	return severityPoints(in.Crowding, SeverityHigh) +
		severityPoints(in.Condition, SeverityHigh) +
		severityPoints(in.Accessibility, SeverityPoor)
}

func buildRecommendations(in NarrativeInputs) string {
	var b strings.Builder
	b.WriteString("<br>")

	score := SeverityScore(in)
	switch {
	case score >= 7:
		b.WriteString("აუცილებელია ")
		var actions []string
		if in.Crowding == SeverityCritical {
			actions = append(actions, "ახალი სკოლების მშენებლობა")
		}
		if in.Condition == SeverityCritical {
			if in.NeedsReplacement > 0 {
				actions = append(actions, fmt.Sprintf("%d სკოლის სრული ჩანაცვლება", in.NeedsReplacement))
			}
			actions = append(actions, "მასშტაბური რეაბილიტაცია")
		}
		if in.Accessibility == SeverityCritical || in.Accessibility == SeverityPoor {
			actions = append(actions, "ინფრასტრუქტურის სრული განახლება")
		}
		b.WriteString(strings.Join(actions, ", "))
		b.WriteString(" - ეს ნაბიჯები აუცილებელია ქალაქის ამ ნაწილში ხარისხიანი და თანასწორი სასკოლო განათლების უზრუნველსაყოფად.")

	case score >= 4:
		b.WriteString("მთავარი რეკომენდაცია - ")
		var priorities []string
		if isSevere(in.Crowding) {
			priorities = append(priorities, "გადატვირთულობის შესამცირებლად აუცილებელია ახალი სკოლების მშენებლობა")
		}
		if isSevere(in.Condition) {
			priorities = append(priorities, "არსებული ინფრასტრუქტურის სრულყოფილი რეაბილიტაცია")
		}
		if in.Accessibility == SeverityPoor || in.Accessibility == SeverityModerate {
			priorities = append(priorities, "ინკლუზიური გარემოს შექმნა პანდუსების, ლიფტებისა და ადაპტირებული საპირფარეშოების მოწყობით")
		}
		b.WriteString(strings.Join(priorities, ", ასევე "))
		b.WriteString(".")

	case score > 0:
		b.WriteString("ძირითადი რეკომენდაცია - ")
		b.WriteString("იდენტიფიცირებული ხარვეზების აღმოსაფხვრელად საჭიროა მიზანმიმართული საინვესტიციო პროგრამის შემუშავება, ")
		if in.Condition == SeverityModerate {
			b.WriteString("რომელიც უზრუნველყოფს შენობების ხარისხიან რეაბილიტაციას")
		}
		if in.Accessibility == SeverityModerate {
			if in.Condition == SeverityModerate {
				b.WriteString(" და ")
			}
			b.WriteString("ინკლუზიური ინფრასტრუქტურის გაუმჯობესებას ")
		}
		b.WriteString(".")

	default:
		b.WriteString("დასკვნის სახით, შეგვიძლია აღვნიშნოთ, რომ ")
		b.WriteString("ამ არეალში სკოლების ზოგადი მდგომარეობა დამაკმაყოფილებელია. ")
		if in.Accessibility == SeverityGood || in.Accessibility == SeverityExcellent {
			b.WriteString("ეს არეალი განსაკუთრებულად მაღალი ინკლუზიურობით გამოირჩევა. ")
		}
		b.WriteString("რეკომენდირებულია ხარისხიანი მოვლა-პატრონობა და მიმდინარე გაუმჯობესებები ოპტიმალური სასწავლო გარემოს შესანარჩუნებლად.")
	}

	return b.String()
}
