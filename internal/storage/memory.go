package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/InQaaaaGit/logogen.git/internal/models"
	"go.uber.org/zap"
)

// MemoryStorage реализует Storage в памяти процесса
type MemoryStorage struct {
	mu     sync.RWMutex
	logos  map[int64]models.Logo
	nextID int64
	now    func() time.Time
	logger *zap.Logger
}

// NewMemoryStorage создает новый экземпляр MemoryStorage
func NewMemoryStorage(logger *zap.Logger) *MemoryStorage {
	return &MemoryStorage{
		logos:  make(map[int64]models.Logo),
		nextID: 1,
		now:    time.Now,
		logger: logger,
	}
}

// ListByUser возвращает логотипы пользователя, новые первыми
func (ms *MemoryStorage) ListByUser(ctx context.Context, userID string) ([]models.Logo, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	result := make([]models.Logo, 0)
	for _, logo := range ms.logos {
		if logo.UserID == userID {
			result = append(result, logo)
		}
	}
	sortNewestFirst(result)

	return result, nil
}

// Get получает логотип по id в пределах пользователя
func (ms *MemoryStorage) Get(ctx context.Context, id int64, userID string) (models.Logo, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	logo, exists := ms.logos[id]
	if !exists || logo.UserID != userID {
		return models.Logo{}, ErrLogoNotFound
	}
	return logo, nil
}

// Create сохраняет логотип в памяти
func (ms *MemoryStorage) Create(ctx context.Context, logo models.Logo) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	logo.ID = ms.nextID
	logo.CreatedAt = ms.now().UTC()
	ms.logos[logo.ID] = logo
	ms.nextID++

	return logo.ID, nil
}

// UpdateImage обновляет изображение логотипа пользователя
func (ms *MemoryStorage) UpdateImage(ctx context.Context, id int64, userID, imageURL string, edited bool) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	logo, exists := ms.logos[id]
	if !exists || logo.UserID != userID {
		return ErrLogoNotFound
	}
	logo.ImageURL = imageURL
	logo.Edited = edited
	ms.logos[id] = logo

	return nil
}

// Delete удаляет логотип пользователя
func (ms *MemoryStorage) Delete(ctx context.Context, id int64, userID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	logo, exists := ms.logos[id]
	if !exists || logo.UserID != userID {
		return ErrLogoNotFound
	}
	delete(ms.logos, id)

	return nil
}

// CheckConnection проверяет доступность хранилища
func (ms *MemoryStorage) CheckConnection(ctx context.Context) error {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if ms.logos == nil {
		return fmt.Errorf("storage is not initialized")
	}
	return nil
}

// Close ничего не делает, данные живут до конца процесса
func (ms *MemoryStorage) Close() error {
	return nil
}

// sortNewestFirst сортирует по created_at DESC, id DESC
func sortNewestFirst(logos []models.Logo) {
	sort.Slice(logos, func(i, j int) bool {
		if !logos[i].CreatedAt.Equal(logos[j].CreatedAt) {
			return logos[i].CreatedAt.After(logos[j].CreatedAt)
		}
		return logos[i].ID > logos[j].ID
	})
}
