package recurrence

import (
	"fmt"
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
)

type Due struct {
	ToCreate []time.Time
	// Exhausted is set when the stop condition is met and nothing is left to
	// create. The series should then be torn down.
	Exhausted bool
}

// NewState starts a series for a validated rule. The first occurrence is the
// first date of the pattern on or after the rule anchor.
func NewState(rule model.Rule) (*model.RecurrenceState, error) {
	first, ok, err := firstOnOrAfter(rule, rule.Anchor)
	if err != nil {
		return nil, err
	}
	if !ok {
		first = DateOf(rule.Anchor)
	}

	return &model.RecurrenceState{
		Rule:       rule,
		NextAnchor: first,
	}, nil
}

// MaterializeDue returns the single next occurrence that is due by reference
// and has not been created yet. Occurrences are created one at a time, so rule
// edits only ever affect occurrences that do not exist yet.
func MaterializeDue(state *model.RecurrenceState, reference time.Time) (Due, error) {
	rule := state.Rule
	if err := Validate(rule); err != nil {
		return Due{}, err
	}

	if rule.Stop.Type == model.StopAfterCount && state.Count >= rule.Stop.Count {
		return Due{Exhausted: true}, nil
	}

	next, ok, err := firstOnOrAfter(rule, state.NextAnchor)
	if err != nil {
		return Due{}, err
	}
	if !ok {
		return Due{Exhausted: true}, nil
	}

	if rule.Stop.Type == model.StopUntil && next.After(DateOf(rule.Stop.Until)) {
		return Due{Exhausted: true}, nil
	}

	if next.After(DateOf(reference)) {
		return Due{}, nil
	}

	return Due{ToCreate: []time.Time{next}}, nil
}

func Advance(state *model.RecurrenceState) error {
	seq, err := Occurrences(state.Rule, state.NextAnchor)
	if err != nil {
		return err
	}

	current, ok := seq.Next()
	if !ok {
		return fmt.Errorf("%w: no occurrence left after %s", ErrInvalidArgument, state.NextAnchor.Format(dateLayout))
	}

	following, ok := seq.Next()
	if !ok {
		following = current.AddDate(0, 0, 1)
	}

	state.Count++
	state.NextAnchor = following

	return nil
}

// Reconfigure replaces the rule of a running series. An invalid rule is
// rejected and leaves the state untouched. The next anchor is recomputed from
// the current one, so created occurrences are never moved.
func Reconfigure(state *model.RecurrenceState, rule model.Rule) error {
	next, ok, err := firstOnOrAfter(rule, state.NextAnchor)
	if err != nil {
		return err
	}

	state.Rule = rule
	if ok {
		state.NextAnchor = next
	}

	return nil
}

func firstOnOrAfter(rule model.Rule, start time.Time) (time.Time, bool, error) {
	seq, err := Occurrences(rule, start)
	if err != nil {
		return time.Time{}, false, err
	}

	d, ok := seq.Next()
	return d, ok, nil
}
