package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/InQaaaaGit/logogen.git/internal/models"
	"go.uber.org/zap"
)

// ListLogos возвращает логотипы пользователя, новые первыми
func (s *LogoService) ListLogos(ctx context.Context, userID string) ([]models.Logo, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	logos, err := s.storage.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching logos: %w", err)
	}
	return logos, nil
}

// GetLogo возвращает логотип пользователя по id
func (s *LogoService) GetLogo(ctx context.Context, userID string, id int64) (models.Logo, error) {
	if userID == "" {
		return models.Logo{}, ErrUnauthorized
	}
	return s.storage.Get(ctx, id, userID)
}

// SaveLogo сохраняет выбранный логотип с edited=false и возвращает его id
func (s *LogoService) SaveLogo(ctx context.Context, userID string, req models.SaveLogoRequest) (int64, error) {
	if userID == "" {
		return 0, ErrUnauthorized
	}

	req.BusinessName = strings.TrimSpace(req.BusinessName)
	req.Niche = strings.TrimSpace(req.Niche)
	req.Colors = strings.TrimSpace(req.Colors)
	req.ImageURL = strings.TrimSpace(req.ImageURL)

	if err := s.validateStruct(req, nil, msgMissingFields); err != nil {
		return 0, err
	}

	id, err := s.storage.Create(ctx, models.Logo{
		UserID:       userID,
		BusinessName: req.BusinessName,
		Niche:        req.Niche,
		Colors:       req.Colors,
		ImageURL:     req.ImageURL,
		Edited:       false,
	})
	if err != nil {
		return 0, fmt.Errorf("error saving logo: %w", err)
	}

	s.logger.Info("Logo saved", zap.String("user_id", userID), zap.Int64("logo_id", id))
	return id, nil
}

// SaveEditedLogo меняет изображение и признак edited у существующего логотипа пользователя
func (s *LogoService) SaveEditedLogo(ctx context.Context, userID string, req models.SaveEditedRequest) error {
	if userID == "" {
		return ErrUnauthorized
	}

	req.ImageURL = strings.TrimSpace(req.ImageURL)
	if err := s.validateStruct(req, saveEditedMessages, msgMissingFields); err != nil {
		return err
	}

	return s.storage.UpdateImage(ctx, req.LogoID, userID, req.ImageURL, req.Edited)
}

// DeleteLogo удаляет логотип пользователя
func (s *LogoService) DeleteLogo(ctx context.Context, userID string, id int64) error {
	if userID == "" {
		return ErrUnauthorized
	}
	if err := s.storage.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("Logo deleted", zap.String("user_id", userID), zap.Int64("logo_id", id))
	return nil
}
