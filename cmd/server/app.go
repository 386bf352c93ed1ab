package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskops-api/internal/config"
	"github.com/phrazzld/taskops-api/internal/platform/memory"
	"github.com/phrazzld/taskops-api/internal/service"
	"github.com/phrazzld/taskops-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	taskStore   store.TaskStore
	taskService service.TaskService
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	app := &application{
		config: cfg,
		logger: logger,
	}

	app.taskStore = memory.NewMemoryTaskStore(cfg.Store.ShardCount, logger)

	var err error
	app.taskService, err = service.NewTaskService(app.taskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully",
		"shard_count", cfg.Store.ShardCount)
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
// Tasks live only in memory, so whatever is still stored is discarded here.
func (app *application) cleanup() {
	app.logger.Info("Discarding in-memory tasks",
		"task_count", app.taskStore.Len(context.Background()))
}
