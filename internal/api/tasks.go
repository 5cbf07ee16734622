package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
	"github.com/SergeyKozhin/recurring-tasks/internal/pkg/validator"
)

func (a *Api) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		ProjectID   int64     `json:"project_id"`
		AssigneeID  *int64    `json:"assignee_id"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Tags        []string  `json:"tags"`
		Priority    int       `json:"priority"`
		Date        *date     `json:"date"`
		Recurrence  *ruleJSON `json:"recurrence"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()

	v.Check(req.ProjectID > 0, "project_id", "project_id must be provided")
	v.Check(len(strings.TrimSpace(req.Title)) != 0, "title", "title must be provided")
	v.Check(validPriority(req.Priority), "priority", "priority must be 0 or 1")

	var rule *model.Rule
	if req.Recurrence != nil {
		mapped := mapToRule(req.Recurrence, v)
		rule = &mapped
	}

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	task, err := a.tasks.CreateTask(r.Context(), &model.TaskCreate{
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssigneeID,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Priority:    model.Priority(req.Priority),
		Date:        dateValue(req.Date),
	}, rule)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("create task: %w", err))
		return
	}

	resp, _ := mapToTaskResp(task)

	if err := a.writeJSON(w, http.StatusCreated, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) getTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.taskID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	task, err := a.tasks.GetTask(r.Context(), id)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get task: %w", err))
		return
	}

	resp, _ := mapToTaskResp(task)

	if task.Recurring {
		count, err := a.tasks.CountRecurrenceTasks(r.Context(), id)
		if err != nil {
			a.serviceErrorResponse(w, r, fmt.Errorf("count recurrence tasks: %w", err))
			return
		}
		resp.RecurringCount = &count
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) updateTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.taskID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	req := &struct {
		AssigneeID  *int64   `json:"assignee_id"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
		Priority    int      `json:"priority"`
		Active      *bool    `json:"active"`
		Scope       string   `json:"scope"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if req.Scope == "" {
		req.Scope = string(model.UpdateScopeThis)
	}

	v := validator.New()

	v.Check(len(strings.TrimSpace(req.Title)) != 0, "title", "title must be provided")
	v.Check(validPriority(req.Priority), "priority", "priority must be 0 or 1")
	v.Check(validator.In(req.Scope,
		string(model.UpdateScopeThis),
		string(model.UpdateScopeSubsequent),
		string(model.UpdateScopeAll),
	), "scope", "scope must be one of this, subsequent, all")

	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	task, err := a.tasks.UpdateTask(r.Context(), id, &model.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		Tags:        req.Tags,
		Priority:    model.Priority(req.Priority),
		Active:      req.Active,
	}, model.UpdateScope(req.Scope))
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("update task: %w", err))
		return
	}

	resp, _ := mapToTaskResp(task)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.taskID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.tasks.DeleteTask(r.Context(), id); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("delete task: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func validPriority(p int) bool {
	return model.Priority(p) == model.PriorityNormal || model.Priority(p) == model.PriorityUrgent
}
