package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/nollyprod/stagehand-api/internal/casting"
	"github.com/nollyprod/stagehand-api/internal/config"
	"github.com/nollyprod/stagehand-api/internal/events"
	"github.com/nollyprod/stagehand-api/internal/generation"
	"github.com/nollyprod/stagehand-api/internal/marketing"
	"github.com/nollyprod/stagehand-api/internal/planner"
	"github.com/nollyprod/stagehand-api/internal/platform/gemini"
	"github.com/nollyprod/stagehand-api/internal/platform/logger"
	"github.com/nollyprod/stagehand-api/internal/platform/postgres"
	"github.com/nollyprod/stagehand-api/internal/script"
	"github.com/nollyprod/stagehand-api/internal/service"
	"github.com/nollyprod/stagehand-api/internal/task"
)

// application holds the wired dependencies of the running server.
type application struct {
	config   *config.Config
	logger   *slog.Logger
	db       *sql.DB
	runner   *task.Runner
	planning *service.PlanningService
}

// newApplication loads configuration and wires every component: the task
// store (postgres when a database URL is configured, in-memory otherwise),
// the optional generative backend, the per-type task handlers, the runner,
// and the planning service.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_configured", cfg.Database.URL != "",
		"generative_backend_configured", cfg.LLM.GeminiAPIKey != "")

	app := &application{
		config: cfg,
		logger: appLogger,
	}

	var taskStore task.Store
	if cfg.Database.URL != "" {
		db, err := setupAppDatabase(cfg, appLogger)
		if err != nil {
			return nil, err
		}
		if err := runMigrations(db, appLogger); err != nil {
			return nil, err
		}
		app.db = db
		taskStore = postgres.NewTaskStore(db)
	} else {
		appLogger.Info("no database configured, using in-memory task store")
		taskStore = task.NewMemoryStore()
	}

	backend, err := setupBackend(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	runner := task.NewRunner(taskStore, task.RunnerConfig{
		WorkersPerType: cfg.Worker.WorkersPerType,
		QueueSize:      cfg.Worker.QueueSize,
		HandlerTimeout: cfg.Worker.HandlerTimeout,
	}, appLogger)

	registerHandlers(runner, backend, cfg, appLogger)

	emitter := events.NewInMemoryEventEmitter(appLogger)
	emitter.RegisterHandler(service.NewTaskDispatcher(runner, appLogger))

	app.runner = runner
	app.planning = service.NewPlanningService(taskStore, emitter, runner, appLogger)

	return app, nil
}

// setupBackend creates the Gemini client when an API key is configured. A
// nil backend is a supported mode: every handler runs its deterministic
// fallback.
func setupBackend(cfg *config.Config, appLogger *slog.Logger) (generation.Backend, error) {
	if cfg.LLM.GeminiAPIKey == "" {
		appLogger.Info("no generative backend configured, handlers will use fallback paths")
		return nil, nil
	}

	client, err := gemini.NewClient(context.Background(), appLogger, gemini.Config{
		APIKey:            cfg.LLM.GeminiAPIKey,
		Model:             cfg.LLM.ModelName,
		EmbeddingModel:    cfg.LLM.EmbeddingModel,
		MaxRetries:        cfg.LLM.MaxRetries,
		RetryDelaySeconds: cfg.LLM.RetryDelaySeconds,
		RequestTimeout:    cfg.LLM.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create generative backend: %w", err)
	}
	return client, nil
}

// registerHandlers binds one handler per task type.
func registerHandlers(runner *task.Runner, backend generation.Backend, cfg *config.Config, appLogger *slog.Logger) {
	var textGen generation.TextGenerator
	var embedder generation.Embedder
	if backend != nil {
		textGen = backend
		embedder = backend
	}

	optimizer := planner.NewOptimizer(textGen, planner.OptimizerConfig{
		BaselineCost:        cfg.Planner.BaselineCost,
		WeatherRiskInterval: cfg.Planner.WeatherRiskInterval,
	}, appLogger)
	runner.RegisterHandler(task.TypeScheduleOptimization, planner.NewTaskHandler(optimizer))

	analyzer := script.NewAnalyzer(textGen, appLogger)
	runner.RegisterHandler(task.TypeScriptAnalysis, script.NewTaskHandler(analyzer))

	scorer := casting.NewScorer(embedder, casting.BiasConfig{
		GenderThreshold:          cfg.Bias.GenderThreshold,
		AgeThreshold:             cfg.Bias.AgeThreshold,
		LocationThreshold:        cfg.Bias.LocationThreshold,
		ExperienceLevelThreshold: cfg.Bias.ExperienceLevelThreshold,
		NewcomerThreshold:        cfg.Bias.NewcomerThreshold,
		GenderPenalty:            cfg.Bias.GenderPenalty,
		AgePenalty:               cfg.Bias.AgePenalty,
		LocationPenalty:          cfg.Bias.LocationPenalty,
		ExperienceLevelPenalty:   cfg.Bias.ExperienceLevelPenalty,
		NewcomerPenalty:          cfg.Bias.NewcomerPenalty,
		AgeBandYears:             cfg.Bias.AgeBandYears,
	}, appLogger)
	runner.RegisterHandler(task.TypeCastingRecommendation, casting.NewTaskHandler(scorer))

	generator := marketing.NewGenerator(textGen, appLogger)
	runner.RegisterHandler(task.TypeMarketingContent, marketing.NewTaskHandler(generator))
}

// cleanup releases application resources in reverse dependency order.
func (app *application) cleanup() {
	app.runner.Stop()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
