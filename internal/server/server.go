// Package server предоставляет общую функциональность для запуска HTTP и HTTPS серверов.
// Пакет инкапсулирует логику инициализации конфигурации, логгера и запуска серверов.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/InQaaaaGit/logogen.git/internal/buildinfo"
	"github.com/InQaaaaGit/logogen.git/internal/config"
	"go.uber.org/zap"
)

// Starter интерфейс для запуска сервера
type Starter interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// HTTPServer представляет HTTP сервер с общей логикой запуска
type HTTPServer struct {
	server *http.Server
	config *config.Config
	logger *zap.Logger
}

// NewHTTPServer создает новый HTTP сервер
func NewHTTPServer(server *http.Server, cfg *config.Config, logger *zap.Logger) *HTTPServer {
	return &HTTPServer{
		server: server,
		config: cfg,
		logger: logger,
	}
}

// Start запускает HTTP или HTTPS сервер в зависимости от конфигурации
func (s *HTTPServer) Start() error {
	if s.config.IsHTTPSEnabled() {
		return s.startHTTPS()
	}
	return s.startHTTP()
}

// Shutdown останавливает сервер, дожидаясь завершения активных запросов
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// startHTTPS запускает HTTPS сервер.
// Отсутствующие сертификат или ключ дают понятную ошибку до открытия порта.
func (s *HTTPServer) startHTTPS() error {
	for _, path := range []string{s.config.TLSCertFile, s.config.TLSKeyFile} {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("TLS file is not available: %w", err)
		}
	}

	s.logger.Info("Starting HTTPS server",
		zap.String("address", s.config.ServerAddress),
		zap.String("cert", s.config.TLSCertFile),
		zap.String("key", s.config.TLSKeyFile))

	return s.server.ListenAndServeTLS(s.config.TLSCertFile, s.config.TLSKeyFile)
}

// startHTTP запускает HTTP сервер
func (s *HTTPServer) startHTTP() error {
	s.logger.Info("Starting HTTP server", zap.String("address", s.config.ServerAddress))
	return s.server.ListenAndServe()
}

// InitLogger инициализирует production логгер с функцией синхронизации
func InitLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			log.Printf("Error syncing logger: %v", err)
		}
	}

	return logger, cleanup
}

// InitConfig загружает конфигурацию; при ошибке завершает процесс
func InitConfig(logger *zap.Logger) *config.Config {
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatal("Error loading config", zap.Error(err))
	}
	return cfg
}

// LogBuildInfo пишет в лог версию сборки
func LogBuildInfo(logger *zap.Logger, info *buildinfo.Info) {
	logger.Info("Build info", info.Fields()...)
}
