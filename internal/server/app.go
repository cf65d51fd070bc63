// Package server initializes and runs the RecipeBook application server.
// It opens the database, runs migrations, builds the GraphQL schema over the
// service layer and starts the HTTP server with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mkurent/recipebook/internal/logging"
	"github.com/mkurent/recipebook/internal/server/config"
	"github.com/mkurent/recipebook/internal/server/graph"
	"github.com/mkurent/recipebook/internal/server/repositories/repomanager"
	"github.com/mkurent/recipebook/internal/server/services"
	"github.com/mkurent/recipebook/internal/server/storage"
	"github.com/mkurent/recipebook/internal/server/web"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	userService   *services.UserService
	recipeService *services.RecipeService
	schema        *graph.Schema
	imageStore    *storage.ImageStore
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	us := services.NewUserService(db, rm, cfg.SecretKey, cfg.TokenValidityDuration)
	rs := services.NewRecipeService(db, rm)

	schema, err := graph.New(us, rs)
	if err != nil {
		return nil, fmt.Errorf("schema init error: %w", err)
	}

	store, err := storage.NewImageStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("image store init error: %w", err)
	}

	return &App{
		config:        cfg,
		logger:        logger,
		db:            db,
		userService:   us,
		recipeService: rs,
		schema:        schema,
		imageStore:    store,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	router := web.NewRouter(app.schema, app.imageStore, []byte(app.config.SecretKey), app.logger)

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "http server shutdown", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server...", "addr", app.config.EndpointAddrHTTP)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
}
