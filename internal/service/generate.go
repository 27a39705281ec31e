package service

import (
	"context"
	"strings"

	"github.com/InQaaaaGit/logogen.git/internal/metrics"
	"github.com/InQaaaaGit/logogen.git/internal/models"
	"go.uber.org/zap"
)

// Generate строит промпт и запрашивает одно изображение у генератора.
//
// Ошибки генератора и отсутствие ключа API не возвращаются вызывающему:
// вместо них отдаются две заглушки с предупреждением. Ошибкой считается
// только невалидный запрос.
func (s *LogoService) Generate(ctx context.Context, req models.GenerationRequest) (models.GenerationResult, error) {
	req.BusinessName = strings.TrimSpace(req.BusinessName)
	req.Niche = strings.TrimSpace(req.Niche)
	req.Colors = strings.TrimSpace(req.Colors)

	if err := s.validateStruct(req, nil, msgMissingFields); err != nil {
		return models.GenerationResult{}, err
	}

	if s.generator == nil {
		s.logger.Warn("Image API is not configured, returning placeholder images")
		metrics.RecordGeneration(metrics.OutcomeUnconfigured)
		return placeholderResult(WarningUnconfigured), nil
	}

	prompt := BuildPrompt(req)
	imageURL, err := s.generator.GenerateImage(ctx, prompt)
	if err != nil {
		s.logger.Error("Image API error, returning placeholder images",
			zap.String("business_name", req.BusinessName),
			zap.String("niche", req.Niche),
			zap.Error(err))
		metrics.RecordGeneration(metrics.OutcomeUpstreamErr)
		return placeholderResult(WarningUpstream), nil
	}

	metrics.RecordGeneration(metrics.OutcomeGenerated)

	// Генератор отдает одно изображение; второй вариант - тот же URL
	return models.GenerationResult{ImageURLs: []string{imageURL, imageURL}}, nil
}
