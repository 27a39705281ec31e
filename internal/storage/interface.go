package storage

import (
	"context"

	"github.com/InQaaaaGit/logogen.git/internal/models"
)

// LogoStorage интерфейс хранилища логотипов.
// Все операции над конкретной записью ограничены парой (id, userID):
// чужая запись для вызывающего неотличима от отсутствующей.
type LogoStorage interface {
	// ListByUser возвращает логотипы пользователя, новые первыми
	ListByUser(ctx context.Context, userID string) ([]models.Logo, error)

	// Get возвращает логотип пользователя по id.
	// Возвращает ErrLogoNotFound, если записи нет или она принадлежит другому пользователю.
	Get(ctx context.Context, id int64, userID string) (models.Logo, error)

	// Create сохраняет новый логотип и возвращает его id.
	// Поля ID и CreatedAt заполняются хранилищем.
	Create(ctx context.Context, logo models.Logo) (int64, error)

	// UpdateImage меняет image_url и признак edited
	UpdateImage(ctx context.Context, id int64, userID, imageURL string, edited bool) error

	// Delete удаляет логотип пользователя
	Delete(ctx context.Context, id int64, userID string) error
}

// DatabaseChecker интерфейс для проверки соединения с хранилищем
type DatabaseChecker interface {
	// CheckConnection проверяет соединение с хранилищем
	CheckConnection(ctx context.Context) error
}

// Storage объединяет все возможности хранилища, нужные приложению
type Storage interface {
	LogoStorage
	DatabaseChecker
	Close() error
}
