// Package app собирает приложение: хранилище, сервис логотипов, HTTP роутер и middleware.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/InQaaaaGit/logogen.git/internal/config"
	"github.com/InQaaaaGit/logogen.git/internal/handler"
	"github.com/InQaaaaGit/logogen.git/internal/metrics"
	"github.com/InQaaaaGit/logogen.git/internal/middleware"
	"github.com/InQaaaaGit/logogen.git/internal/server"
	"github.com/InQaaaaGit/logogen.git/internal/service"
	"github.com/InQaaaaGit/logogen.git/internal/storage"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	limiterCleanupInterval = time.Minute
	shutdownTimeout        = 10 * time.Second
)

// App представляет приложение сервиса логотипов
type App struct {
	config  *config.Config
	router  *chi.Mux
	logger  *zap.Logger
	storage storage.Storage
	handler *handler.Handler
	auth    *middleware.Authenticator
	limiter *middleware.RateLimiter
}

// NewApp создает приложение и регистрирует маршруты.
// Хранилище выбирается по конфигурации: Postgres, файл или память.
// Без явно заданного SECRET_KEY приложение не создается.
func NewApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if err := cfg.ValidateSecretKey(); err != nil {
		return nil, err
	}

	st, err := storage.New(cfg.DatabaseDSN, cfg.FileStoragePath, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating storage: %w", err)
	}

	logger.Info("Application configured",
		zap.String("address", cfg.ServerAddress),
		zap.String("base_url", cfg.BaseURL))

	return newApp(cfg, st, service.NewFromConfig(cfg, st, logger), logger), nil
}

func newApp(cfg *config.Config, st storage.Storage, svc service.Service, logger *zap.Logger) *App {
	a := &App{
		config:  cfg,
		router:  chi.NewRouter(),
		logger:  logger,
		storage: st,
		handler: handler.NewHandler(svc, logger),
		auth:    middleware.NewAuthenticator(cfg.SecretKey, logger),
		limiter: middleware.NewRateLimiter(cfg.GenerateRateLimit, cfg.GenerateRateBurst, logger),
	}
	a.setupRoutes()
	return a
}

// Router возвращает настроенный роутер
func (a *App) Router() http.Handler {
	return a.router
}

// setupRoutes регистрирует эндпоинты и глобальные middleware.
// Все маршруты доступны и в корне, и под префиксом /api.
func (a *App) setupRoutes() {
	a.router.Use(chimiddleware.RequestID)
	a.router.Use(chimiddleware.Recoverer)
	a.router.Use(metrics.InstrumentHandler)
	a.router.Use(a.auth.Resolve)
	a.router.Use(a.handler.WithLogging)
	a.router.Use(a.handler.WithGzip)

	a.router.Get("/ping", a.handler.HandlePing)
	a.router.Method(http.MethodGet, "/metrics", metrics.Handler())

	a.router.Route("/logos", a.logoRoutes)
	a.router.Route("/api/logos", a.logoRoutes)
}

func (a *App) logoRoutes(r chi.Router) {
	r.With(a.limiter.Handler).Post("/generate", a.handler.HandleGenerate)
	r.Post("/download", a.handler.HandleDownload)

	r.Group(func(r chi.Router) {
		r.Use(a.auth.Require)

		r.Get("/", a.handler.HandleListLogos)
		r.Post("/save", a.handler.HandleSaveLogo)
		r.Post("/save-edited", a.handler.HandleSaveEdited)
		r.Post("/edit", a.handler.HandleEditLogo)
		r.Get("/{id}", a.handler.HandleGetLogo)
		r.Delete("/{id}", a.handler.HandleDeleteLogo)
	})
}

// GetServer создает HTTP сервер с таймаутами.
// WriteTimeout учитывает задержку редактора и время ответа генератора.
func (a *App) GetServer() *http.Server {
	return &http.Server{
		Addr:              a.config.ServerAddress,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}
}

// Run запускает HTTP или HTTPS сервер и блокируется до отмены ctx,
// после чего корректно останавливает сервер и закрывает хранилище.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.storage.Close(); err != nil {
			a.logger.Error("Error closing storage", zap.Error(err))
		}
	}()

	if a.limiter.Enabled() {
		go a.limiter.RunCleanup(ctx, limiterCleanupInterval)
	}

	srv := server.NewHTTPServer(a.GetServer(), a.config, a.logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	return nil
}
