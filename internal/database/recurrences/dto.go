package recurrences

import (
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
)

type recurrenceDTO struct {
	ID              int64
	TaskID          int64
	Anchor          time.Time
	RepeatInterval  int
	RepeatUnit      int
	StopType        int
	StopUntil       *time.Time
	StopCount       int
	MonthMode       int
	YearMode        int
	Weekdays        []int64
	Ordinal         int
	Weekday         int
	DayOfMonth      int
	MonthOfYear     int
	RRule           string `db:"rrule"`
	NextAnchor      time.Time
	OccurrenceCount int
	Version         int64
}

func mapToState(dto *recurrenceDTO) *model.RecurrenceState {
	weekdays := make([]time.Weekday, len(dto.Weekdays))
	for i, d := range dto.Weekdays {
		weekdays[i] = time.Weekday(d)
	}

	stop := model.StopCondition{
		Type:  model.StopType(dto.StopType),
		Count: dto.StopCount,
	}
	if dto.StopUntil != nil {
		stop.Until = *dto.StopUntil
	}

	return &model.RecurrenceState{
		ID:     dto.ID,
		TaskID: dto.TaskID,
		Rule: model.Rule{
			Anchor:      dto.Anchor,
			Interval:    dto.RepeatInterval,
			Unit:        model.Unit(dto.RepeatUnit),
			Stop:        stop,
			MonthMode:   model.Mode(dto.MonthMode),
			YearMode:    model.Mode(dto.YearMode),
			Weekdays:    weekdays,
			Ordinal:     model.Ordinal(dto.Ordinal),
			Weekday:     time.Weekday(dto.Weekday),
			DayOfMonth:  dto.DayOfMonth,
			MonthOfYear: time.Month(dto.MonthOfYear),
		},
		NextAnchor: dto.NextAnchor,
		Count:      dto.OccurrenceCount,
		Version:    dto.Version,
		RRule:      dto.RRule,
	}
}

func ruleColumns(state *model.RecurrenceState) map[string]interface{} {
	rule := state.Rule

	weekdays := make([]int64, len(rule.Weekdays))
	for i, d := range rule.Weekdays {
		weekdays[i] = int64(d)
	}

	var until *time.Time
	if rule.Stop.Type == model.StopUntil {
		until = &rule.Stop.Until
	}

	return map[string]interface{}{
		"anchor":          rule.Anchor,
		"repeat_interval": rule.Interval,
		"repeat_unit":     int(rule.Unit),
		"stop_type":       int(rule.Stop.Type),
		"stop_until":      until,
		"stop_count":      rule.Stop.Count,
		"month_mode":      int(rule.MonthMode),
		"year_mode":       int(rule.YearMode),
		"weekdays":        weekdays,
		"ordinal":         int(rule.Ordinal),
		"weekday":         int(rule.Weekday),
		"day_of_month":    rule.DayOfMonth,
		"month_of_year":   int(rule.MonthOfYear),
		"rrule":           state.RRule,
	}
}
