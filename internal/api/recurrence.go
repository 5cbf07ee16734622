package api

import (
	"fmt"
	"net/http"

	"github.com/SergeyKozhin/recurring-tasks/internal/pkg/validator"
)

func (a *Api) setRecurrenceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.taskID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	req := &ruleJSON{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	rule := mapToRule(req, v)
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	state, err := a.tasks.SetRecurrence(r.Context(), id, rule)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("set recurrence: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToRecurrenceResp(state), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) stopRecurrenceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.taskID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.tasks.StopRecurrence(r.Context(), id); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("stop recurrence: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) continueRecurrenceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.taskID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	if err := a.tasks.ContinueRecurrence(r.Context(), id); err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("continue recurrence: %w", err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) previewRecurrenceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.taskID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	preview, err := a.tasks.PreviewRecurrence(r.Context(), id)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("preview recurrence: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToPreviewResp(preview), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) recurrenceTasksHandler(w http.ResponseWriter, r *http.Request) {
	id, err := a.taskID(r)
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	tasks, err := a.tasks.GetRecurrenceTasks(r.Context(), id)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("get recurrence tasks: %w", err))
		return
	}

	resp, _ := mapSlice(tasks, mapToTaskResp)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) previewRuleHandler(w http.ResponseWriter, r *http.Request) {
	req := &ruleJSON{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	rule := mapToRule(req, v)
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	preview, err := a.tasks.PreviewRule(r.Context(), rule)
	if err != nil {
		a.serviceErrorResponse(w, r, fmt.Errorf("preview rule: %w", err))
		return
	}

	if err := a.writeJSON(w, http.StatusOK, mapToPreviewResp(preview), nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) sweepHandler(w http.ResponseWriter, r *http.Request) {
	res, err := a.tasks.Sweep(r.Context(), a.clock.Now())
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("sweep: %w", err))
		return
	}

	resp := map[string]int{
		"due":     res.Due,
		"created": res.Created,
		"skipped": res.Skipped,
		"failed":  res.Failed,
	}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
