package recurrence

import (
	"fmt"
	"strings"
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
)

const dateLayout = "2006-01-02"

// Locale carries the display preferences used to render rules. It never
// affects the date computation.
type Locale struct {
	WeekStart  time.Weekday
	DateFormat string
}

func DefaultLocale() Locale {
	return Locale{
		WeekStart:  time.Monday,
		DateFormat: "01/02/2006",
	}
}

var unitNames = map[model.Unit]string{
	model.UnitDay:   "day",
	model.UnitWeek:  "week",
	model.UnitMonth: "month",
	model.UnitYear:  "year",
}

var ordinalNames = map[model.Ordinal]string{
	model.OrdinalFirst:  "first",
	model.OrdinalSecond: "second",
	model.OrdinalThird:  "third",
	model.OrdinalLast:   "last",
}

func Describe(rule model.Rule, loc Locale) string {
	var b strings.Builder

	unit := unitNames[rule.Unit]
	if rule.Interval == 1 {
		fmt.Fprintf(&b, "Every %s", unit)
	} else {
		fmt.Fprintf(&b, "Every %d %ss", rule.Interval, unit)
	}

	switch rule.Unit {
	case model.UnitWeek:
		b.WriteString(" on ")
		b.WriteString(strings.Join(orderedWeekdays(rule.Weekdays, loc.WeekStart), ", "))
	case model.UnitMonth:
		if rule.MonthMode == model.ModeByDate {
			fmt.Fprintf(&b, " on day %d", rule.DayOfMonth)
		} else {
			fmt.Fprintf(&b, " on the %s %s", ordinalNames[rule.Ordinal], rule.Weekday)
		}
	case model.UnitYear:
		if rule.YearMode == model.ModeByDate {
			fmt.Fprintf(&b, " on %s %d", rule.MonthOfYear, rule.DayOfMonth)
		} else {
			fmt.Fprintf(&b, " on the %s %s of %s", ordinalNames[rule.Ordinal], rule.Weekday, rule.MonthOfYear)
		}
	}

	switch rule.Stop.Type {
	case model.StopUntil:
		fmt.Fprintf(&b, ", until %s", rule.Stop.Until.Format(layout(loc)))
	case model.StopAfterCount:
		fmt.Fprintf(&b, ", %d times", rule.Stop.Count)
	}

	return b.String()
}

func Message(rule model.Rule, p *Preview, loc Locale) string {
	var b strings.Builder

	b.WriteString(Describe(rule, loc))
	for _, d := range p.Dates {
		b.WriteString("\n- ")
		b.WriteString(d.Format(layout(loc)))
	}
	if p.HasMore {
		b.WriteString("\n- ...")
	}
	if rule.Stop.Type == model.StopUntil {
		fmt.Fprintf(&b, "\nNumber of tasks: %d", p.Total)
	}

	return b.String()
}

func orderedWeekdays(days []time.Weekday, weekStart time.Weekday) []string {
	ordered := sortWeekdays(days, weekStart)

	res := make([]string, len(ordered))
	for i, d := range ordered {
		res[i] = d.String()[:3]
	}

	return res
}

func layout(loc Locale) string {
	if loc.DateFormat == "" {
		return dateLayout
	}

	return loc.DateFormat
}
