package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/InQaaaaGit/logogen.git/internal/app"
	"github.com/InQaaaaGit/logogen.git/internal/buildinfo"
	"github.com/InQaaaaGit/logogen.git/internal/server"
	"go.uber.org/zap"
)

// Заполняются при сборке через -ldflags "-X main.buildVersion=..."
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	logger, sync := server.InitLogger()
	defer sync()

	server.LogBuildInfo(logger, buildinfo.NewInfo(buildVersion, buildDate, buildCommit))

	cfg := server.InitConfig(logger)

	application, err := app.NewApp(cfg, logger)
	if err != nil {
		logger.Fatal("Ошибка создания приложения", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return
	}
	logger.Info("Server stopped")
}
