package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type contextKey string

const contextKeyTaskID = contextKey("taskID")

var errCantRetrieveTaskID = errors.New("can't retrieve task id")

func (a *Api) taskCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		taskID, err := strconv.ParseInt(chi.URLParam(r, "taskID"), 10, 64)
		if err != nil || taskID <= 0 {
			a.notFoundResponse(w, r)
			return
		}

		taskCtx := context.WithValue(r.Context(), contextKeyTaskID, taskID)
		next.ServeHTTP(w, r.WithContext(taskCtx))
	})
}

func (a *Api) taskID(r *http.Request) (int64, error) {
	id, ok := r.Context().Value(contextKeyTaskID).(int64)
	if !ok {
		return 0, errCantRetrieveTaskID
	}

	return id, nil
}
