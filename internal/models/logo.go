// Package models содержит типы данных сервиса генерации логотипов:
// запросы и ответы HTTP API и сохраняемую запись Logo.
package models

import "time"

// Logo представляет сохраненный логотип пользователя (таблица logos).
// JSON-имена полей совпадают с именами колонок.
type Logo struct {
	ID           int64     `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	BusinessName string    `json:"business_name" db:"business_name"`
	Niche        string    `json:"niche" db:"niche"`
	Colors       string    `json:"colors" db:"colors"`
	ImageURL     string    `json:"image_url" db:"image_url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	Edited       bool      `json:"edited" db:"edited"`
}

// GenerationRequest - запрос на генерацию логотипа.
// Ниша - свободный текст: форма предлагает варианты, но API принимает любую непустую строку.
type GenerationRequest struct {
	BusinessName string `json:"businessName" validate:"required"`
	Niche        string `json:"niche" validate:"required"`
	Colors       string `json:"colors" validate:"required"`
}

// GenerationResult - результат генерации.
// Warning заполняется, когда вместо настоящих изображений возвращены заглушки.
type GenerationResult struct {
	ImageURLs []string `json:"imageUrls"`
	Warning   string   `json:"warning,omitempty"`
}

// SaveLogoRequest - запрос на сохранение выбранного логотипа
type SaveLogoRequest struct {
	BusinessName string `json:"businessName" validate:"required"`
	Niche        string `json:"niche" validate:"required"`
	Colors       string `json:"colors" validate:"required"`
	ImageURL     string `json:"imageUrl" validate:"required"`
}

// SaveLogoResponse - ответ на сохранение логотипа
type SaveLogoResponse struct {
	Message string `json:"message"`
	LogoID  int64  `json:"logoId"`
}

// SaveEditedRequest - запрос на сохранение отредактированного логотипа
// Поля проверяются в порядке объявления: сначала imageUrl, затем logoId.
type SaveEditedRequest struct {
	ImageURL string `json:"imageUrl" validate:"required"`
	LogoID   int64  `json:"logoId" validate:"gt=0"`
	Edited   bool   `json:"edited"`
}

// EditOptions - косметические параметры редактора
type EditOptions struct {
	LogoID         int64  `json:"logoId,omitempty"`
	ImageURL       string `json:"imageUrl" validate:"required"`
	Size           string `json:"size,omitempty"`
	FontFamily     string `json:"fontFamily,omitempty"`
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
}

// EditResult - ответ редактора
type EditResult struct {
	EditedImageURL string `json:"editedImageUrl"`
	Message        string `json:"message"`
}

// DownloadRequest - запрос на скачивание изображения
type DownloadRequest struct {
	ImageURL string `json:"imageUrl" validate:"required"`
	Format   string `json:"format" validate:"oneof=png svg"`
}

// Download содержит скачанное изображение, готовое к отдаче клиенту
type Download struct {
	ContentType string
	Filename    string
	Data        []byte
}

// MessageResponse - стандартный ответ с сообщением
type MessageResponse struct {
	Message string `json:"message"`
}
