package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/InQaaaaGit/logogen.git/internal/models"
)

var downloadContentTypes = map[string]string{
	"png": "image/png",
	"svg": "image/svg+xml",
}

// DownloadLogo скачивает изображение и готовит его к отдаче как вложение.
// Формат влияет только на заголовки: байты отдаются без конвертации.
func (s *LogoService) DownloadLogo(ctx context.Context, req models.DownloadRequest) (models.Download, error) {
	req.ImageURL = strings.TrimSpace(req.ImageURL)
	if err := s.validateStruct(req, downloadMessages, msgBadFormat); err != nil {
		return models.Download{}, err
	}

	data, err := s.fetcher.Fetch(ctx, req.ImageURL)
	if err != nil {
		return models.Download{}, fmt.Errorf("error downloading logo: %w", err)
	}

	return models.Download{
		ContentType: downloadContentTypes[req.Format],
		Filename:    "logo." + req.Format,
		Data:        data,
	}, nil
}
