package recurrence

import (
	"testing"
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailyRule(anchor time.Time, stop model.StopCondition) model.Rule {
	return model.Rule{
		Anchor:   anchor,
		Interval: 1,
		Unit:     model.UnitDay,
		Stop:     stop,
	}
}

func TestNewPreview(t *testing.T) {
	anchor := date(2024, 1, 1)

	tests := []struct {
		name    string
		rule    model.Rule
		cfg     PreviewConfig
		dates   []time.Time
		hasMore bool
		total   int
	}{
		{
			name:    "forever is capped at five",
			rule:    weeklyRule(anchor, time.Monday, time.Wednesday, time.Friday),
			dates:   []time.Time{date(2024, 1, 1), date(2024, 1, 3), date(2024, 1, 5), date(2024, 1, 8), date(2024, 1, 10)},
			hasMore: true,
			total:   -1,
		},
		{
			name:  "after count below the cap",
			rule:  dailyRule(anchor, model.StopCondition{Type: model.StopAfterCount, Count: 3}),
			dates: []time.Time{date(2024, 1, 1), date(2024, 1, 2), date(2024, 1, 3)},
			total: 3,
		},
		{
			name:    "after count above the cap",
			rule:    dailyRule(anchor, model.StopCondition{Type: model.StopAfterCount, Count: 8}),
			cfg:     PreviewConfig{MaxItems: 2},
			dates:   []time.Time{date(2024, 1, 1), date(2024, 1, 2)},
			hasMore: true,
			total:   8,
		},
		{
			name:  "after count counts materialized occurrences",
			rule:  dailyRule(anchor, model.StopCondition{Type: model.StopAfterCount, Count: 3}),
			cfg:   PreviewConfig{Materialized: 2},
			dates: []time.Time{date(2024, 1, 1)},
			total: 1,
		},
		{
			name:  "after count already reached",
			rule:  dailyRule(anchor, model.StopCondition{Type: model.StopAfterCount, Count: 3}),
			cfg:   PreviewConfig{Materialized: 4},
			dates: []time.Time{},
			total: 0,
		},
		{
			name:  "until excludes later dates",
			rule:  dailyRule(anchor, model.StopCondition{Type: model.StopUntil, Until: date(2024, 1, 3)}),
			dates: []time.Time{date(2024, 1, 1), date(2024, 1, 2), date(2024, 1, 3)},
			total: 3,
		},
		{
			name:    "until counts beyond the cap",
			rule:    dailyRule(anchor, model.StopCondition{Type: model.StopUntil, Until: date(2024, 1, 10)}),
			dates:   []time.Time{date(2024, 1, 1), date(2024, 1, 2), date(2024, 1, 3), date(2024, 1, 4), date(2024, 1, 5)},
			hasMore: true,
			total:   10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPreview(tt.rule, anchor, tt.cfg)
			require.NoError(t, err)

			assert.Equal(t, tt.dates, p.Dates)
			assert.Equal(t, tt.hasMore, p.HasMore)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}

func TestNewPreview_InvalidRule(t *testing.T) {
	_, err := NewPreview(weeklyRule(date(2024, 1, 1)), date(2024, 1, 1), PreviewConfig{})
	assert.ErrorIs(t, err, ErrInvalidRule)
}
