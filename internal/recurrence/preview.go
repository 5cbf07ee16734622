package recurrence

import (
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
)

const (
	DefaultPreviewItems = 5

	// maxCountedOccurrences caps how far an Until series is walked when
	// counting its remaining occurrences.
	maxCountedOccurrences = 5000
)

type PreviewConfig struct {
	MaxItems int
	// Materialized is the number of occurrences already created for the
	// series. AfterCount rules count it against their total.
	Materialized int
}

type Preview struct {
	Dates   []time.Time
	HasMore bool
	// Total is the number of occurrences left in a bounded series, or -1 for
	// series that never stop.
	Total int
}

// NewPreview lists the upcoming occurrences of the rule from anchor, bounded by
// the rule's stop condition. It is meant for display and has no side effects.
func NewPreview(rule model.Rule, anchor time.Time, cfg PreviewConfig) (*Preview, error) {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = DefaultPreviewItems
	}

	seq, err := Occurrences(rule, anchor)
	if err != nil {
		return nil, err
	}

	res := &Preview{Dates: make([]time.Time, 0, cfg.MaxItems)}

	switch rule.Stop.Type {
	case model.StopAfterCount:
		remaining := rule.Stop.Count - cfg.Materialized
		if remaining < 0 {
			remaining = 0
		}

		n := cfg.MaxItems
		if remaining < n {
			n = remaining
		}

		res.Dates = append(res.Dates, seq.Take(n)...)
		res.HasMore = remaining > len(res.Dates)
		res.Total = remaining
	case model.StopUntil:
		until := DateOf(rule.Stop.Until)
		for res.Total < maxCountedOccurrences {
			d, ok := seq.Next()
			if !ok || d.After(until) {
				break
			}

			if len(res.Dates) < cfg.MaxItems {
				res.Dates = append(res.Dates, d)
			}
			res.Total++
		}
		res.HasMore = res.Total > len(res.Dates)
	default:
		res.Dates = append(res.Dates, seq.Take(cfg.MaxItems)...)
		res.HasMore = len(res.Dates) == cfg.MaxItems
		res.Total = -1
	}

	return res, nil
}
