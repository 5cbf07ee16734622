package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/SergeyKozhin/recurring-tasks/internal/api"
	tasks_service "github.com/SergeyKozhin/recurring-tasks/internal/business/tasks"
	"github.com/SergeyKozhin/recurring-tasks/internal/config"
	"github.com/SergeyKozhin/recurring-tasks/internal/database"
	"github.com/SergeyKozhin/recurring-tasks/internal/database/recurrences"
	"github.com/SergeyKozhin/recurring-tasks/internal/database/tasks"
	"github.com/SergeyKozhin/recurring-tasks/internal/pkg/clock"
	"github.com/SergeyKozhin/recurring-tasks/internal/recurrence"
	"github.com/SergeyKozhin/recurring-tasks/internal/redis"
	"github.com/SergeyKozhin/recurring-tasks/internal/scheduler"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	closer.Bind(cancel)

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initialize logger: %v", err)
	}

	redisPool := redis.NewRedisPool(config.RedisURL(), logger)
	locker := redis.NewLocker(redisPool, config.LockTTL())

	db, err := database.NewPGX(ctx, config.PostgresURL())
	if err != nil {
		log.Fatalf("unable to initialize db: %v", err)
	}
	tasksRepository := tasks.NewRepository()
	recurrencesRepository := recurrences.NewRepository()

	clk := clock.Real{}

	tasksService := tasks_service.NewService(
		db,
		tasksRepository,
		recurrencesRepository,
		locker,
		clk,
		logger,
		tasks_service.Config{
			PreviewItems:     config.PreviewItems(),
			SweepConcurrency: config.SweepConcurrency(),
			Locale: recurrence.Locale{
				WeekStart:  config.WeekStart(),
				DateFormat: config.DateFormat(),
			},
		},
	)

	sweeper := scheduler.NewSweeper(logger, tasksService, clk, config.SweepSchedule())
	if err := sweeper.Start(ctx); err != nil {
		logger.Fatalw("unable to start sweeper", "err", err)
	}

	api, err := api.NewApi(logger, clk, tasksService)
	if err != nil {
		logger.Fatalw("unable to initialize api", "err", err)
	}

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:     ":" + config.Port(),
		Handler:  api,
		ErrorLog: errLogger,
	}

	closer.Bind(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorw("failed to shut down server", "err", err)
		}
	})

	go func() {
		logger.Infow("Started server", "port", config.Port())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("server error", "err", err)
			closer.Close()
		}
	}()

	closer.Hold()
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
