package api

import (
	"context"
	"net/http"
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/model"
	"github.com/SergeyKozhin/recurring-tasks/internal/pkg/clock"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Api struct {
	handler http.Handler
	logger  *zap.SugaredLogger
	clock   clock.Clock

	tasks tasksService
}

type tasksService interface {
	CreateTask(ctx context.Context, info *model.TaskCreate, rule *model.Rule) (*model.Task, error)
	GetTask(ctx context.Context, id int64) (*model.Task, error)
	GetRecurrenceTasks(ctx context.Context, taskID int64) ([]*model.Task, error)
	CountRecurrenceTasks(ctx context.Context, taskID int64) (int, error)
	UpdateTask(ctx context.Context, id int64, info *model.TaskUpdate, scope model.UpdateScope) (*model.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	SetRecurrence(ctx context.Context, taskID int64, rule model.Rule) (*model.RecurrenceState, error)
	StopRecurrence(ctx context.Context, taskID int64) error
	ContinueRecurrence(ctx context.Context, taskID int64) error
	PreviewRecurrence(ctx context.Context, taskID int64) (*model.RecurrencePreview, error)
	PreviewRule(ctx context.Context, rule model.Rule) (*model.RecurrencePreview, error)
	Sweep(ctx context.Context, reference time.Time) (*model.SweepResult, error)
}

func NewApi(logger *zap.SugaredLogger, clk clock.Clock, tasks tasksService) (*Api, error) {
	a := &Api{
		logger: logger,
		clock:  clk,
		tasks:  tasks,
	}
	a.setupHandler()

	return a, nil
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.Logger, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Post("/", a.createTaskHandler)

		r.With(a.taskCtx).Route("/{taskID}", func(r chi.Router) {
			r.Get("/", a.getTaskHandler)
			r.Patch("/", a.updateTaskHandler)
			r.Delete("/", a.deleteTaskHandler)

			r.Route("/recurrence", func(r chi.Router) {
				r.Put("/", a.setRecurrenceHandler)
				r.Delete("/", a.stopRecurrenceHandler)
				r.Post("/continue", a.continueRecurrenceHandler)
				r.Get("/preview", a.previewRecurrenceHandler)
				r.Get("/tasks", a.recurrenceTasksHandler)
			})
		})
	})

	r.Route("/recurrence", func(r chi.Router) {
		r.Post("/preview", a.previewRuleHandler)
		r.Post("/sweep", a.sweepHandler)
	})

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
