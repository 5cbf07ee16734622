package api

import (
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
	"github.com/SergeyKozhin/recurring-tasks/internal/pkg/validator"
)

type ruleJSON struct {
	Anchor      *date     `json:"anchor,omitempty"`
	Interval    int       `json:"interval"`
	Unit        string    `json:"unit"`
	Weekdays    []string  `json:"weekdays,omitempty"`
	Stop        *stopJSON `json:"stop,omitempty"`
	MonthMode   string    `json:"month_mode,omitempty"`
	YearMode    string    `json:"year_mode,omitempty"`
	DayOfMonth  int       `json:"day_of_month,omitempty"`
	Ordinal     string    `json:"ordinal,omitempty"`
	Weekday     string    `json:"weekday,omitempty"`
	MonthOfYear int       `json:"month_of_year,omitempty"`
}

type stopJSON struct {
	Type  string `json:"type"`
	Until *date  `json:"until,omitempty"`
	Count int    `json:"count,omitempty"`
}

var units = map[string]model.Unit{
	"day":   model.UnitDay,
	"week":  model.UnitWeek,
	"month": model.UnitMonth,
	"year":  model.UnitYear,
}

var stopTypes = map[string]model.StopType{
	"forever": model.StopForever,
	"until":   model.StopUntil,
	"after":   model.StopAfterCount,
}

var modes = map[string]model.Mode{
	"date":    model.ModeByDate,
	"weekday": model.ModeByWeekday,
}

var ordinals = map[string]model.Ordinal{
	"first":  model.OrdinalFirst,
	"second": model.OrdinalSecond,
	"third":  model.OrdinalThird,
	"last":   model.OrdinalLast,
}

var weekdays = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

func mapToRule(req *ruleJSON, v *validator.Validator) model.Rule {
	rule := model.Rule{
		Anchor:      dateValue(req.Anchor),
		Interval:    req.Interval,
		DayOfMonth:  req.DayOfMonth,
		MonthOfYear: time.Month(req.MonthOfYear),
	}

	var ok bool
	rule.Unit, ok = units[req.Unit]
	v.Check(ok, "recurrence.unit", "unit must be one of day, week, month, year")

	if req.MonthMode != "" {
		rule.MonthMode, ok = modes[req.MonthMode]
		v.Check(ok, "recurrence.month_mode", "month_mode must be date or weekday")
	}
	if req.YearMode != "" {
		rule.YearMode, ok = modes[req.YearMode]
		v.Check(ok, "recurrence.year_mode", "year_mode must be date or weekday")
	}
	if req.Ordinal != "" {
		rule.Ordinal, ok = ordinals[req.Ordinal]
		v.Check(ok, "recurrence.ordinal", "ordinal must be one of first, second, third, last")
	}
	if req.Weekday != "" {
		rule.Weekday, ok = weekdays[req.Weekday]
		v.Check(ok, "recurrence.weekday", "unknown weekday")
	}

	v.Check(validator.Unique(req.Weekdays), "recurrence.weekdays", "weekdays must not repeat")
	for _, d := range req.Weekdays {
		wd, ok := weekdays[d]
		v.Check(ok, "recurrence.weekdays", "unknown weekday "+d)
		if ok {
			rule.Weekdays = append(rule.Weekdays, wd)
		}
	}

	if req.Stop != nil {
		rule.Stop.Type, ok = stopTypes[req.Stop.Type]
		v.Check(ok, "recurrence.stop.type", "stop type must be one of forever, until, after")
		rule.Stop.Until = dateValue(req.Stop.Until)
		rule.Stop.Count = req.Stop.Count
	}

	return rule
}

func mapToRuleJSON(rule model.Rule) *ruleJSON {
	anchor := date(rule.Anchor)
	res := &ruleJSON{
		Anchor:   &anchor,
		Interval: rule.Interval,
		Unit:     nameOf(units, rule.Unit),
		Stop:     &stopJSON{Type: nameOf(stopTypes, rule.Stop.Type)},
	}

	switch rule.Stop.Type {
	case model.StopUntil:
		until := date(rule.Stop.Until)
		res.Stop.Until = &until
	case model.StopAfterCount:
		res.Stop.Count = rule.Stop.Count
	}

	mode := rule.MonthMode
	switch rule.Unit {
	case model.UnitWeek:
		for _, d := range rule.Weekdays {
			res.Weekdays = append(res.Weekdays, nameOf(weekdays, d))
		}
		return res
	case model.UnitMonth:
		res.MonthMode = nameOf(modes, mode)
	case model.UnitYear:
		mode = rule.YearMode
		res.YearMode = nameOf(modes, mode)
		res.MonthOfYear = int(rule.MonthOfYear)
	default:
		return res
	}

	if mode == model.ModeByDate {
		res.DayOfMonth = rule.DayOfMonth
	} else {
		res.Ordinal = nameOf(ordinals, rule.Ordinal)
		res.Weekday = nameOf(weekdays, rule.Weekday)
	}

	return res
}

func nameOf[T comparable](names map[string]T, value T) string {
	for name, v := range names {
		if v == value {
			return name
		}
	}

	return ""
}
