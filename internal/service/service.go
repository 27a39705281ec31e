// Package service реализует бизнес-логику: генерацию логотипов с откатом на заглушки,
// операции над сохраненными логотипами, редактор-заглушку и скачивание.
package service

import (
	"context"
	"net/http"
	"time"

	"github.com/InQaaaaGit/logogen.git/internal/config"
	"github.com/InQaaaaGit/logogen.git/internal/imagegen"
	"github.com/InQaaaaGit/logogen.git/internal/models"
	"github.com/InQaaaaGit/logogen.git/internal/storage"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Service определяет интерфейс сервиса логотипов
type Service interface {
	Generate(ctx context.Context, req models.GenerationRequest) (models.GenerationResult, error)
	ListLogos(ctx context.Context, userID string) ([]models.Logo, error)
	GetLogo(ctx context.Context, userID string, id int64) (models.Logo, error)
	SaveLogo(ctx context.Context, userID string, req models.SaveLogoRequest) (int64, error)
	SaveEditedLogo(ctx context.Context, userID string, req models.SaveEditedRequest) error
	DeleteLogo(ctx context.Context, userID string, id int64) error
	EditLogo(ctx context.Context, userID string, opts models.EditOptions) (models.EditResult, error)
	DownloadLogo(ctx context.Context, req models.DownloadRequest) (models.Download, error)
	CheckConnection(ctx context.Context) error
}

// ImageGenerator генерирует одно изображение по промпту и возвращает его URL
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// ImageFetcher скачивает изображение по URL
type ImageFetcher interface {
	Fetch(ctx context.Context, imageURL string) ([]byte, error)
}

// LogoService реализует Service
type LogoService struct {
	storage   storage.Storage
	generator ImageGenerator // nil, если ключ API не настроен
	fetcher   ImageFetcher
	validate  *validator.Validate
	editDelay time.Duration
	logger    *zap.Logger
}

// NewLogoService создает сервис из готовых зависимостей.
// generator равный nil означает, что генерация всегда отдает заглушки.
func NewLogoService(st storage.Storage, generator ImageGenerator, fetcher ImageFetcher, editDelay time.Duration, logger *zap.Logger) *LogoService {
	return &LogoService{
		storage:   st,
		generator: generator,
		fetcher:   fetcher,
		validate:  newValidator(),
		editDelay: editDelay,
		logger:    logger,
	}
}

// NewFromConfig собирает сервис по конфигурации.
// Клиент генератора создается только при валидном ключе API.
func NewFromConfig(cfg *config.Config, st storage.Storage, logger *zap.Logger) *LogoService {
	httpClient := &http.Client{Timeout: cfg.ImageAPITimeout}

	var generator ImageGenerator
	if imagegen.IsValidAPIKey(cfg.OpenAIAPIKey) {
		generator = imagegen.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, httpClient, logger)
	} else {
		logger.Warn("OpenAI API key is not set properly, generation will return placeholder images")
	}

	return NewLogoService(st, generator, imagegen.NewFetcher(httpClient, logger), cfg.EditDelay, logger)
}

// CheckConnection проверяет соединение с хранилищем
func (s *LogoService) CheckConnection(ctx context.Context) error {
	return s.storage.CheckConnection(ctx)
}
