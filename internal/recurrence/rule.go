package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
)

var (
	ErrInvalidRule     = errors.New("invalid recurrence rule")
	ErrInvalidArgument = errors.New("invalid argument")
)

type RuleError struct {
	Field   string
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("invalid recurrence rule: %s: %s", e.Field, e.Message)
}

func (e *RuleError) Is(target error) bool {
	return target == ErrInvalidRule
}

func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Validate checks the rule against the validity invariant. Invalid rules are
// rejected, never coerced into a default.
func Validate(rule model.Rule) error {
	if rule.Anchor.IsZero() {
		return &RuleError{Field: "anchor", Message: "anchor must be provided"}
	}

	if rule.Interval <= 0 {
		return &RuleError{Field: "interval", Message: "interval must be positive"}
	}

	switch rule.Unit {
	case model.UnitDay:
	case model.UnitWeek:
		if len(rule.Weekdays) == 0 {
			return &RuleError{Field: "weekdays", Message: "at least one weekday must be selected"}
		}
		for _, wd := range rule.Weekdays {
			if wd < time.Sunday || wd > time.Saturday {
				return &RuleError{Field: "weekdays", Message: fmt.Sprintf("unknown weekday %d", wd)}
			}
		}
	case model.UnitMonth:
		if err := validateMode(rule, rule.MonthMode, "month_mode"); err != nil {
			return err
		}
	case model.UnitYear:
		if rule.MonthOfYear < time.January || rule.MonthOfYear > time.December {
			return &RuleError{Field: "month_of_year", Message: "month must be between 1 and 12"}
		}
		if err := validateMode(rule, rule.YearMode, "year_mode"); err != nil {
			return err
		}
	default:
		return &RuleError{Field: "unit", Message: fmt.Sprintf("unknown unit %d", rule.Unit)}
	}

	switch rule.Stop.Type {
	case model.StopForever:
	case model.StopAfterCount:
		if rule.Stop.Count < 1 {
			return &RuleError{Field: "stop.count", Message: "count must be at least 1"}
		}
	case model.StopUntil:
		if !DateOf(rule.Stop.Until).After(DateOf(rule.Anchor)) {
			return &RuleError{Field: "stop.until", Message: "until date must be after the anchor date"}
		}
	default:
		return &RuleError{Field: "stop.type", Message: fmt.Sprintf("unknown stop condition %d", rule.Stop.Type)}
	}

	return nil
}

func validateMode(rule model.Rule, mode model.Mode, field string) error {
	switch mode {
	case model.ModeByDate:
		if rule.DayOfMonth < 1 || rule.DayOfMonth > 31 {
			return &RuleError{Field: "day_of_month", Message: "day must be between 1 and 31"}
		}
	case model.ModeByWeekday:
		if rule.Ordinal < model.OrdinalFirst || rule.Ordinal > model.OrdinalLast {
			return &RuleError{Field: "ordinal", Message: fmt.Sprintf("unknown ordinal %d", rule.Ordinal)}
		}
		if rule.Weekday < time.Sunday || rule.Weekday > time.Saturday {
			return &RuleError{Field: "weekday", Message: fmt.Sprintf("unknown weekday %d", rule.Weekday)}
		}
	default:
		return &RuleError{Field: field, Message: fmt.Sprintf("unknown mode %d", mode)}
	}

	return nil
}

func sortWeekdays(days []time.Weekday, weekStart time.Weekday) []time.Weekday {
	set := make(map[time.Weekday]struct{}, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}

	res := make([]time.Weekday, 0, len(set))
	for i := 0; i < 7; i++ {
		d := (weekStart + time.Weekday(i)) % 7
		if _, ok := set[d]; ok {
			res = append(res, d)
		}
	}

	return res
}
