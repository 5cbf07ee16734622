package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
)

const dateFormat = "2006-01-02"

type date time.Time

type dateParseError struct {
	value string
}

func (e *dateParseError) Error() string {
	return fmt.Sprintf("invalid date %q, expected format %s", e.value, dateFormat)
}

func (d date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).Format(dateFormat) + `"`), nil
}

func (d *date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return &dateParseError{value: s}
	}

	*d = date(t)
	return nil
}

func dateValue(d *date) time.Time {
	if d == nil {
		return time.Time{}
	}

	return time.Time(*d)
}

type taskResp struct {
	ID             int64    `json:"id"`
	ProjectID      int64    `json:"project_id"`
	AssigneeID     *int64   `json:"assignee_id,omitempty"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Tags           []string `json:"tags"`
	Priority       int      `json:"priority"`
	Date           date     `json:"date"`
	Active         bool     `json:"active"`
	Recurring      bool     `json:"recurring"`
	RecurrenceID   *int64   `json:"recurrence_id,omitempty"`
	RecurringCount *int     `json:"recurring_count,omitempty"`
}

func mapToTaskResp(task *model.Task) (*taskResp, error) {
	tags := task.Tags
	if tags == nil {
		tags = []string{}
	}

	return &taskResp{
		ID:           task.ID,
		ProjectID:    task.ProjectID,
		AssigneeID:   task.AssigneeID,
		Title:        task.Title,
		Description:  task.Description,
		Tags:         tags,
		Priority:     int(task.Priority),
		Date:         date(task.Date),
		Active:       task.Active,
		Recurring:    task.Recurring,
		RecurrenceID: task.RecurrenceID,
	}, nil
}

type recurrenceResp struct {
	ID       int64     `json:"id"`
	TaskID   int64     `json:"task_id"`
	Rule     *ruleJSON `json:"rule"`
	NextDate date      `json:"next_date"`
	Count    int       `json:"count"`
	RRule    string    `json:"rrule"`
}

func mapToRecurrenceResp(state *model.RecurrenceState) *recurrenceResp {
	return &recurrenceResp{
		ID:       state.ID,
		TaskID:   state.TaskID,
		Rule:     mapToRuleJSON(state.Rule),
		NextDate: date(state.NextAnchor),
		Count:    state.Count,
		RRule:    state.RRule,
	}
}

// previewResp leaves Total out for series that never stop.
type previewResp struct {
	Dates   []date `json:"dates"`
	HasMore bool   `json:"has_more"`
	Total   *int   `json:"total,omitempty"`
	Message string `json:"message"`
	RRule   string `json:"rrule"`
}

func mapToPreviewResp(p *model.RecurrencePreview) *previewResp {
	dates := make([]date, len(p.Dates))
	for i, d := range p.Dates {
		dates[i] = date(d)
	}

	resp := &previewResp{
		Dates:   dates,
		HasMore: p.HasMore,
		Message: p.Message,
		RRule:   p.RRule,
	}
	if p.Total >= 0 {
		total := p.Total
		resp.Total = &total
	}

	return resp
}
