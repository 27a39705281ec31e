package storage

import "go.uber.org/zap"

// New выбирает реализацию хранилища: PostgreSQL, если задан DSN,
// затем файл, если задан путь, иначе память.
func New(dsn, filePath string, logger *zap.Logger) (Storage, error) {
	switch {
	case dsn != "":
		logger.Info("Using PostgreSQL storage")
		return NewPostgresStorage(dsn, logger)
	case filePath != "":
		logger.Info("Using file storage", zap.String("path", filePath))
		return NewFileStorage(filePath, logger)
	default:
		logger.Info("Using in-memory storage")
		return NewMemoryStorage(logger), nil
	}
}
