package recurrence

import (
	"fmt"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
	"github.com/teambition/rrule-go"
)

// RRule renders the rule as RFC 5545 text with its DTSTART. Day-of-month
// clamping is expressed as BYMONTHDAY=28,...,N;BYSETPOS=-1.
func RRule(rule model.Rule) (string, error) {
	if err := Validate(rule); err != nil {
		return "", err
	}

	anchor := DateOf(rule.Anchor)
	opt := rOption(rule, anchor)

	if isByDate(rule) {
		opt.Byweekday = nil
		opt.Bymonthday = clampDays(rule.DayOfMonth)
		if len(opt.Bymonthday) > 1 {
			opt.Bysetpos = []int{-1}
		}
		if rule.Unit == model.UnitYear {
			opt.Freq = rrule.YEARLY
			opt.Bymonth = []int{int(rule.MonthOfYear)}
		} else {
			opt.Freq = rrule.MONTHLY
		}
	}

	switch rule.Stop.Type {
	case model.StopAfterCount:
		opt.Count = rule.Stop.Count
	case model.StopUntil:
		opt.Until = DateOf(rule.Stop.Until)
	}

	r, err := rrule.NewRRule(opt)
	if err != nil {
		return "", fmt.Errorf("creating rule: %w", err)
	}

	return r.String(), nil
}

func clampDays(day int) []int {
	if day <= 28 {
		return []int{day}
	}

	days := make([]int, 0, day-27)
	for d := 28; d <= day; d++ {
		days = append(days, d)
	}

	return days
}
