package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/InQaaaaGit/logogen.git/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogoRecord represents a record in the file storage
type LogoRecord struct {
	UUID string `json:"uuid"`
	models.Logo
}

// FileStorage implements Storage using a JSON lines file
type FileStorage struct {
	filePath string
	logos    map[int64]LogoRecord
	nextID   int64
	mutex    sync.RWMutex
	file     *os.File // nil после неудачного переоткрытия; Create откроет заново
	closed   bool
	now      func() time.Time
	logger   *zap.Logger
}

// NewFileStorage creates a new FileStorage instance
func NewFileStorage(filePath string, logger *zap.Logger) (*FileStorage, error) {
	file, err := os.OpenFile(filePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	fs := &FileStorage{
		filePath: filePath,
		file:     file,
		logos:    make(map[int64]LogoRecord),
		nextID:   1,
		now:      time.Now,
		logger:   logger,
	}

	if err := fs.loadFromFile(); err != nil {
		if closeErr := file.Close(); closeErr != nil {
			logger.Error("Error closing file after load failure", zap.Error(closeErr))
		}
		return nil, err
	}

	return fs, nil
}

// loadFromFile загружает записи из файла; более поздняя запись с тем же id побеждает
func (fs *FileStorage) loadFromFile() error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if _, err := fs.file.Seek(0, 0); err != nil {
		return fmt.Errorf("error seeking to file start: %w", err)
	}

	decoder := json.NewDecoder(fs.file)
	for decoder.More() {
		var record LogoRecord
		if err := decoder.Decode(&record); err != nil {
			return fmt.Errorf("error decoding record: %w", err)
		}
		fs.logos[record.ID] = record
		if record.ID >= fs.nextID {
			fs.nextID = record.ID + 1
		}
	}

	return nil
}

// ListByUser возвращает логотипы пользователя из файла
func (fs *FileStorage) ListByUser(ctx context.Context, userID string) ([]models.Logo, error) {
	fs.mutex.RLock()
	defer fs.mutex.RUnlock()

	result := make([]models.Logo, 0)
	for _, record := range fs.logos {
		if record.UserID == userID {
			result = append(result, record.Logo)
		}
	}
	sortNewestFirst(result)

	return result, nil
}

// Get получает логотип по id в пределах пользователя
func (fs *FileStorage) Get(ctx context.Context, id int64, userID string) (models.Logo, error) {
	fs.mutex.RLock()
	defer fs.mutex.RUnlock()

	record, exists := fs.logos[id]
	if !exists || record.UserID != userID {
		return models.Logo{}, ErrLogoNotFound
	}
	return record.Logo, nil
}

// Create дописывает новый логотип в конец файла
func (fs *FileStorage) Create(ctx context.Context, logo models.Logo) (int64, error) {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	logo.ID = fs.nextID
	logo.CreatedAt = fs.now().UTC()
	record := LogoRecord{UUID: uuid.NewString(), Logo: logo}

	data, err := json.Marshal(record)
	if err != nil {
		return 0, fmt.Errorf("error marshaling logo record: %w", err)
	}
	file, err := fs.appendFile()
	if err != nil {
		return 0, err
	}
	if _, err := file.Write(append(data, '\n')); err != nil {
		return 0, fmt.Errorf("error writing to file: %w", err)
	}

	fs.logos[logo.ID] = record
	fs.nextID++

	return logo.ID, nil
}

// UpdateImage обновляет изображение и перезаписывает файл.
// Память меняется только после успешной записи на диск.
func (fs *FileStorage) UpdateImage(ctx context.Context, id int64, userID, imageURL string, edited bool) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	record, exists := fs.logos[id]
	if !exists || record.UserID != userID {
		return ErrLogoNotFound
	}
	record.ImageURL = imageURL
	record.Edited = edited

	next := fs.snapshot()
	next[id] = record
	if err := fs.rewriteFile(next); err != nil {
		return fmt.Errorf("error rewriting file after update: %w", err)
	}
	fs.logos = next
	return nil
}

// Delete удаляет логотип и перезаписывает файл
func (fs *FileStorage) Delete(ctx context.Context, id int64, userID string) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	record, exists := fs.logos[id]
	if !exists || record.UserID != userID {
		return ErrLogoNotFound
	}

	next := fs.snapshot()
	delete(next, id)
	if err := fs.rewriteFile(next); err != nil {
		return fmt.Errorf("error rewriting file after delete: %w", err)
	}
	fs.logos = next
	return nil
}

func (fs *FileStorage) snapshot() map[int64]LogoRecord {
	next := make(map[int64]LogoRecord, len(fs.logos))
	for id, record := range fs.logos {
		next[id] = record
	}
	return next
}

// rewriteFile записывает records во временный файл и атомарно подменяет им основной.
// При ошибке до подмены основной файл и его дескриптор не затрагиваются.
func (fs *FileStorage) rewriteFile(records map[int64]LogoRecord) (err error) {
	tmpPath := fs.filePath + ".tmp"
	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("error opening temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	for _, record := range records {
		data, marshalErr := json.Marshal(record)
		if marshalErr != nil {
			return fmt.Errorf("error marshaling record: %w", marshalErr)
		}
		if _, err = tmp.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("error writing record: %w", err)
		}
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("error syncing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error closing temp file: %w", err)
	}
	if err = os.Rename(tmpPath, fs.filePath); err != nil {
		return fmt.Errorf("error replacing file: %w", err)
	}

	// Старый дескриптор указывает на замененный файл
	if fs.file != nil {
		if closeErr := fs.file.Close(); closeErr != nil {
			fs.logger.Error("Error closing replaced file", zap.Error(closeErr))
		}
		fs.file = nil
	}
	if _, openErr := fs.appendFile(); openErr != nil {
		fs.logger.Error("Error reopening file after rewrite", zap.Error(openErr))
	}
	return nil
}

// appendFile возвращает дескриптор для дозаписи, открывая файл при необходимости
func (fs *FileStorage) appendFile() (*os.File, error) {
	if fs.closed {
		return nil, fmt.Errorf("file storage is closed")
	}
	if fs.file == nil {
		file, err := os.OpenFile(fs.filePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("error reopening file: %w", err)
		}
		fs.file = file
	}
	return fs.file, nil
}

// CheckConnection проверяет доступность файла
func (fs *FileStorage) CheckConnection(ctx context.Context) error {
	fs.mutex.RLock()
	defer fs.mutex.RUnlock()

	if fs.closed {
		return fmt.Errorf("file storage is closed")
	}
	if fs.file == nil {
		_, err := os.Stat(fs.filePath)
		return err
	}
	return nil
}

// Close синхронизирует и закрывает файл
func (fs *FileStorage) Close() error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if fs.closed {
		return nil
	}
	fs.closed = true
	if fs.file == nil {
		return nil
	}
	if err := fs.file.Sync(); err != nil {
		fs.logger.Error("Error syncing file before close", zap.Error(err))
	}
	if err := fs.file.Close(); err != nil {
		return fmt.Errorf("error closing file: %w", err)
	}
	fs.file = nil

	return nil
}
