package recurrence

import (
	"fmt"
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
	"github.com/teambition/rrule-go"
)

const (
	// lastYear bounds the by-date stepping the same way rrule stops near the
	// end of representable dates.
	lastYear = 9999

	secondsPerDay = 24 * 60 * 60
)

type Sequence struct {
	next func() (time.Time, bool)
}

func (s *Sequence) Next() (time.Time, bool) {
	d, ok := s.next()
	if !ok {
		return time.Time{}, false
	}

	return DateOf(d), true
}

func (s *Sequence) Take(n int) []time.Time {
	res := make([]time.Time, 0, n)
	for len(res) < n {
		d, ok := s.Next()
		if !ok {
			break
		}
		res = append(res, d)
	}

	return res
}

// Occurrences returns the occurrence dates of the rule on or after start.
// The pattern is always laid out from the rule anchor, so any start continues
// the anchor's sequence. Stop conditions are not applied.
func Occurrences(rule model.Rule, start time.Time) (*Sequence, error) {
	if err := Validate(rule); err != nil {
		return nil, err
	}

	anchor := DateOf(rule.Anchor)
	start = DateOf(start)
	if start.Before(anchor) {
		start = anchor
	}

	if isByDate(rule) {
		return &Sequence{next: byDate(rule, anchor, start)}, nil
	}

	r, err := rrule.NewRRule(rOption(rule, origin(rule, anchor, start)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	it := r.Iterator()
	return &Sequence{next: func() (time.Time, bool) {
		for {
			d, ok := it()
			if !ok || !d.Before(start) {
				return d, ok
			}
		}
	}}, nil
}

// NextDates returns up to count occurrence dates on or after start.
func NextDates(rule model.Rule, start time.Time, count int) ([]time.Time, error) {
	seq, err := Occurrences(rule, start)
	if err != nil {
		return nil, err
	}

	if count < 0 {
		return nil, fmt.Errorf("%w: count must not be negative, got %d", ErrInvalidArgument, count)
	}

	return seq.Take(count), nil
}

func isByDate(rule model.Rule) bool {
	return rule.Unit == model.UnitMonth && rule.MonthMode == model.ModeByDate ||
		rule.Unit == model.UnitYear && rule.YearMode == model.ModeByDate
}

func rOption(rule model.Rule, start time.Time) rrule.ROption {
	opt := rrule.ROption{
		Dtstart:  start,
		Interval: rule.Interval,
		Wkst:     rrule.MO,
	}

	switch rule.Unit {
	case model.UnitDay:
		opt.Freq = rrule.DAILY
	case model.UnitWeek:
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = weekdays(rule.Weekdays)
	case model.UnitMonth:
		opt.Freq = rrule.MONTHLY
		opt.Byweekday = []rrule.Weekday{nthWeekday(rule.Weekday, rule.Ordinal)}
	case model.UnitYear:
		opt.Freq = rrule.YEARLY
		opt.Bymonth = []int{int(rule.MonthOfYear)}
		opt.Byweekday = []rrule.Weekday{nthWeekday(rule.Weekday, rule.Ordinal)}
	}

	return opt
}

func byDate(rule model.Rule, anchor, start time.Time) func() (time.Time, bool) {
	step := rule.Interval
	month := anchor.Month()
	if rule.Unit == model.UnitYear {
		step = 12 * rule.Interval
		month = rule.MonthOfYear
	}

	idx := anchor.Year()*12 + int(month) - 1
	if clampedDate(idx, rule.DayOfMonth).Before(anchor) {
		idx += step
	}
	if gap := monthIndex(start) - idx; gap > 0 {
		idx += gap / step * step
	}
	for clampedDate(idx, rule.DayOfMonth).Before(start) {
		idx += step
	}

	return func() (time.Time, bool) {
		if idx/12 > lastYear {
			return time.Time{}, false
		}

		d := clampedDate(idx, rule.DayOfMonth)
		idx += step
		return d, true
	}
}

// origin is the latest period start of the anchor's grid that is not after
// start. rrule counts intervals from its dtstart period.
func origin(rule model.Rule, anchor, start time.Time) time.Time {
	var res time.Time
	switch rule.Unit {
	case model.UnitDay:
		days := int((start.Unix() - anchor.Unix()) / secondsPerDay)
		return anchor.AddDate(0, 0, days/rule.Interval*rule.Interval)
	case model.UnitWeek:
		monday := anchor.AddDate(0, 0, -((int(anchor.Weekday()) + 6) % 7))
		weeks := int((start.Unix() - monday.Unix()) / secondsPerDay / 7)
		res = monday.AddDate(0, 0, weeks/rule.Interval*rule.Interval*7)
	case model.UnitMonth:
		months := monthIndex(start) - monthIndex(anchor)
		res = time.Date(anchor.Year(), anchor.Month()+time.Month(months/rule.Interval*rule.Interval), 1, 0, 0, 0, 0, time.UTC)
	case model.UnitYear:
		years := start.Year() - anchor.Year()
		res = time.Date(anchor.Year()+years/rule.Interval*rule.Interval, time.January, 1, 0, 0, 0, 0, time.UTC)
	}

	if res.Before(anchor) {
		return anchor
	}
	return res
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

func clampedDate(monthIdx, day int) time.Time {
	year, month := monthIdx/12, time.Month(monthIdx%12+1)
	if last := daysIn(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

func weekdays(days []time.Weekday) []rrule.Weekday {
	ordered := sortWeekdays(days, time.Monday)

	res := make([]rrule.Weekday, len(ordered))
	for i, d := range ordered {
		res[i] = rruleWeekdays[d]
	}

	return res
}

func nthWeekday(day time.Weekday, ordinal model.Ordinal) rrule.Weekday {
	n := int(ordinal)
	if ordinal == model.OrdinalLast {
		n = -1
	}

	wd := rruleWeekdays[day]
	return wd.Nth(n)
}
