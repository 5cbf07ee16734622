package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
	"github.com/SergeyKozhin/recurring-tasks/internal/recurrence"
)

func (a *Api) logError(r *http.Request, err error) {
	a.logger.Errorw("server error", "method", r.Method, "uri", r.URL.RequestURI(), "error", err)
}

func (a *Api) errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	data := map[string]interface{}{"error": message}

	if err := a.writeJSON(w, status, data, nil); err != nil {
		a.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (a *Api) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	a.logError(r, err)

	message := "the server encountered a problem and could not process your request"
	a.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (a *Api) clientErrorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	a.logger.Debugw("client error", "err", message)
	a.errorResponse(w, r, status, message)
}

func (a *Api) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	a.clientErrorResponse(w, r, http.StatusNotFound, message)
}

func (a *Api) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	a.clientErrorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (a *Api) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	a.clientErrorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (a *Api) failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	a.clientErrorResponse(w, r, http.StatusUnprocessableEntity, errors)
}

func (a *Api) conflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	a.clientErrorResponse(w, r, http.StatusConflict, err.Error())
}

func (a *Api) serviceErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var ruleErr *recurrence.RuleError

	switch {
	case errors.As(err, &ruleErr):
		a.failedValidationResponse(w, r, map[string]string{"recurrence." + ruleErr.Field: ruleErr.Message})
	case errors.Is(err, recurrence.ErrInvalidRule):
		a.failedValidationResponse(w, r, map[string]string{"recurrence": err.Error()})
	case errors.Is(err, model.ErrNoRecord):
		a.notFoundResponse(w, r)
	case errors.Is(err, model.ErrNotRecurring),
		errors.Is(err, model.ErrRecurringTask),
		errors.Is(err, model.ErrRuleChangedConcurrently),
		errors.Is(err, model.ErrLocked):
		a.conflictResponse(w, r, unwrapAll(err))
	default:
		a.serverErrorResponse(w, r, err)
	}
}

// unwrapAll drops the call-site context so clients only see the sentinel.
func unwrapAll(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
