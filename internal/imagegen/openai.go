// Package imagegen содержит HTTP-клиенты внешних сервисов изображений:
// генерацию через OpenAI Images API и скачивание готовых картинок.
package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Параметры запроса к генератору
const (
	DefaultModel   = "dall-e-3"
	DefaultSize    = "1024x1024"
	DefaultQuality = "standard"
	responseFormat = "url"

	// PlaceholderAPIKey - значение ключа из примера конфигурации
	PlaceholderAPIKey = "sk-your-openai-api-key"
	apiKeyPrefix      = "sk-"
	minAPIKeyLength   = 21
)

// ErrEmptyImageURL возвращается, когда генератор ответил без URL изображения
var ErrEmptyImageURL = errors.New("no image URL returned from image API")

// APIError описывает ответ генератора с кодом, отличным от 2xx
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("image API error (status %d): %s", e.StatusCode, e.Message)
}

// ImageRequest - тело запроса POST /images/generations
type ImageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	ResponseFormat string `json:"response_format"`
}

// IsValidAPIKey проверяет, похож ли ключ на настоящий.
// Пустой ключ, ключ-заглушка и ключи без префикса sk- считаются ненастроенными.
func IsValidAPIKey(key string) bool {
	if key == "" || key == PlaceholderAPIKey {
		return false
	}
	return strings.HasPrefix(key, apiKeyPrefix) && len(key) >= minAPIKeyLength
}

// OpenAIClient вызывает OpenAI Images API
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewOpenAIClient создает клиент генератора.
// baseURL без завершающего слэша, например https://api.openai.com/v1.
func NewOpenAIClient(apiKey, baseURL string, httpClient *http.Client, logger *zap.Logger) *OpenAIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OpenAIClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// GenerateImage запрашивает ровно одно квадратное изображение и возвращает его URL
func (c *OpenAIClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(ImageRequest{
		Model:          DefaultModel,
		Prompt:         prompt,
		N:              1,
		Size:           DefaultSize,
		Quality:        DefaultQuality,
		ResponseFormat: responseFormat,
	})
	if err != nil {
		return "", fmt.Errorf("error marshaling image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error creating image request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Debug("Sending request to image API", zap.String("prompt", prompt))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image API request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("Error closing image API response body", zap.Error(err))
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading image API response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := gjson.GetBytes(data, "error.message").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	imageURL := gjson.GetBytes(data, "data.0.url").String()
	if imageURL == "" {
		return "", ErrEmptyImageURL
	}

	c.logger.Debug("Image API response received", zap.String("url", imageURL))
	return imageURL, nil
}
