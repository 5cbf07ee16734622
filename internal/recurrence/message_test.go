package recurrence

import (
	"testing"
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	anchor := date(2024, 1, 1)

	tests := []struct {
		name     string
		rule     model.Rule
		loc      Locale
		expected string
	}{
		{
			name:     "weekly from monday",
			rule:     weeklyRule(anchor, time.Sunday, time.Monday),
			loc:      DefaultLocale(),
			expected: "Every week on Mon, Sun",
		},
		{
			name:     "weekly from sunday",
			rule:     weeklyRule(anchor, time.Sunday, time.Monday),
			loc:      Locale{WeekStart: time.Sunday},
			expected: "Every week on Sun, Mon",
		},
		{
			name: "every other month on the last friday",
			rule: model.Rule{
				Anchor:    anchor,
				Interval:  2,
				Unit:      model.UnitMonth,
				MonthMode: model.ModeByWeekday,
				Ordinal:   model.OrdinalLast,
				Weekday:   time.Friday,
			},
			expected: "Every 2 months on the last Friday",
		},
		{
			name: "yearly by weekday three times",
			rule: model.Rule{
				Anchor:      anchor,
				Interval:    1,
				Unit:        model.UnitYear,
				YearMode:    model.ModeByWeekday,
				Ordinal:     model.OrdinalSecond,
				Weekday:     time.Sunday,
				MonthOfYear: time.May,
				Stop:        model.StopCondition{Type: model.StopAfterCount, Count: 3},
			},
			expected: "Every year on the second Sunday of May, 3 times",
		},
		{
			name: "yearly by date",
			rule: model.Rule{
				Anchor:      anchor,
				Interval:    1,
				Unit:        model.UnitYear,
				DayOfMonth:  31,
				MonthOfYear: time.January,
			},
			expected: "Every year on January 31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Describe(tt.rule, tt.loc))
		})
	}
}

func TestMessage(t *testing.T) {
	rule := dailyRule(date(2024, 1, 1), model.StopCondition{Type: model.StopUntil, Until: date(2024, 1, 3)})

	p, err := NewPreview(rule, rule.Anchor, PreviewConfig{})
	require.NoError(t, err)

	expected := "Every day, until 01/03/2024\n" +
		"- 01/01/2024\n" +
		"- 01/02/2024\n" +
		"- 01/03/2024\n" +
		"Number of tasks: 3"
	assert.Equal(t, expected, Message(rule, p, DefaultLocale()))

	forever := weeklyRule(date(2024, 1, 1), time.Monday)
	p, err = NewPreview(forever, forever.Anchor, PreviewConfig{MaxItems: 2})
	require.NoError(t, err)
	assert.Equal(t, "Every week on Mon\n- 2024-01-01\n- 2024-01-08\n- ...", Message(forever, p, Locale{}))
}
