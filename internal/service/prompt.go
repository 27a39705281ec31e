package service

import (
	"fmt"

	"github.com/InQaaaaGit/logogen.git/internal/models"
)

// Заглушки, которые отдаются вместо сгенерированных изображений
var PlaceholderURLs = []string{
	"https://placehold.co/1024x1024/EEE/31343C?font=montserrat&text=Sample+Logo",
	"https://placehold.co/1024x1024/EEEEEE/31343C?font=montserrat&text=Demo+Logo",
}

// Предупреждения о заглушках
const (
	WarningUnconfigured = "Using placeholder images. Set a valid OpenAI API key to generate real logos."
	WarningUpstream     = "Using placeholder images due to API issues. Please try again later."
)

// BuildPrompt строит текстовый промпт для генератора изображений
func BuildPrompt(req models.GenerationRequest) string {
	return fmt.Sprintf("Create a professional logo for a %s business named \"%s\". "+
		"The logo should use %s colors. "+
		"Create a minimalist, modern design with a clean look. "+
		"The logo should be centered on a transparent background.",
		req.Niche, req.BusinessName, req.Colors)
}

func placeholderResult(warning string) models.GenerationResult {
	urls := make([]string, len(PlaceholderURLs))
	copy(urls, PlaceholderURLs)
	return models.GenerationResult{ImageURLs: urls, Warning: warning}
}
