package service

import (
	"context"
	"strings"
	"time"

	"github.com/InQaaaaGit/logogen.git/internal/models"
	"go.uber.org/zap"
)

const msgEdited = "Logo edited successfully"

// EditLogo - заглушка редактора: изображение не меняется.
// После фиксированной задержки возвращается исходный URL.
func (s *LogoService) EditLogo(ctx context.Context, userID string, opts models.EditOptions) (models.EditResult, error) {
	if userID == "" {
		return models.EditResult{}, ErrUnauthorized
	}

	opts.ImageURL = strings.TrimSpace(opts.ImageURL)
	if err := s.validateStruct(opts, editMessages, msgImageURLMissing); err != nil {
		return models.EditResult{}, err
	}

	s.logger.Debug("Editing logo",
		zap.String("size", opts.Size),
		zap.String("font_family", opts.FontFamily),
		zap.String("primary_color", opts.PrimaryColor),
		zap.String("secondary_color", opts.SecondaryColor))

	if s.editDelay > 0 {
		timer := time.NewTimer(s.editDelay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return models.EditResult{}, ctx.Err()
		case <-timer.C:
		}
	}

	return models.EditResult{
		EditedImageURL: opts.ImageURL,
		Message:        msgEdited,
	}, nil
}
