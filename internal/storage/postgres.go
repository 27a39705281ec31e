package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/InQaaaaGit/logogen.git/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	logoColumns = `id, user_id, business_name, niche, colors, image_url, created_at, edited`

	listLogosQuery  = `SELECT ` + logoColumns + ` FROM logos WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	getLogoQuery    = `SELECT ` + logoColumns + ` FROM logos WHERE id = $1 AND user_id = $2`
	insertLogoQuery = `INSERT INTO logos (user_id, business_name, niche, colors, image_url, edited) ` +
		`VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	updateLogoImageQuery = `UPDATE logos SET image_url = $1, edited = $2 WHERE id = $3 AND user_id = $4`
	deleteLogoQuery      = `DELETE FROM logos WHERE id = $1 AND user_id = $2`
)

// PostgresStorage реализует Storage с использованием PostgreSQL
type PostgresStorage struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewPostgresStorage подключается к базе, накатывает миграции и создает PostgresStorage
func NewPostgresStorage(dsn string, logger *zap.Logger) (*PostgresStorage, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err := applyMigrations(dsn, logger); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Failed to close DB connection after migration error", zap.Error(closeErr))
		}
		return nil, err
	}

	return NewPostgresStorageWithDB(db, logger), nil
}

// NewPostgresStorageWithDB оборачивает уже открытое соединение без миграций
func NewPostgresStorageWithDB(db *sqlx.DB, logger *zap.Logger) *PostgresStorage {
	return &PostgresStorage{
		db:     db,
		logger: logger,
	}
}

// ListByUser возвращает логотипы пользователя, новые первыми
func (ps *PostgresStorage) ListByUser(ctx context.Context, userID string) ([]models.Logo, error) {
	logos := make([]models.Logo, 0)
	if err := ps.db.SelectContext(ctx, &logos, listLogosQuery, userID); err != nil {
		return nil, fmt.Errorf("list logos error: %w", err)
	}
	return logos, nil
}

// Get получает логотип по id в пределах пользователя
func (ps *PostgresStorage) Get(ctx context.Context, id int64, userID string) (models.Logo, error) {
	var logo models.Logo
	err := ps.db.GetContext(ctx, &logo, getLogoQuery, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Logo{}, ErrLogoNotFound
		}
		return models.Logo{}, fmt.Errorf("get logo error: %w", err)
	}
	return logo, nil
}

// Create сохраняет логотип и возвращает его id
func (ps *PostgresStorage) Create(ctx context.Context, logo models.Logo) (int64, error) {
	var id int64
	err := ps.db.QueryRowxContext(ctx, insertLogoQuery,
		logo.UserID, logo.BusinessName, logo.Niche, logo.Colors, logo.ImageURL, logo.Edited,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			ps.logger.Error("Postgres rejected logo insert",
				zap.String("code", string(pqErr.Code)),
				zap.String("condition", pqErr.Code.Name()),
				zap.String("detail", pqErr.Detail))
		}
		return 0, fmt.Errorf("save logo error: %w", err)
	}
	return id, nil
}

// UpdateImage обновляет image_url и edited одним запросом, ограниченным (id, user_id)
func (ps *PostgresStorage) UpdateImage(ctx context.Context, id int64, userID, imageURL string, edited bool) error {
	res, err := ps.db.ExecContext(ctx, updateLogoImageQuery, imageURL, edited, id, userID)
	if err != nil {
		return fmt.Errorf("update logo error: %w", err)
	}
	return expectAffected(res)
}

// Delete удаляет логотип пользователя
func (ps *PostgresStorage) Delete(ctx context.Context, id int64, userID string) error {
	res, err := ps.db.ExecContext(ctx, deleteLogoQuery, id, userID)
	if err != nil {
		return fmt.Errorf("delete logo error: %w", err)
	}
	return expectAffected(res)
}

// expectAffected возвращает ErrLogoNotFound, если запрос не затронул ни одной строки
func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return ErrLogoNotFound
	}
	return nil
}

// Close закрывает соединение с базой данных
func (ps *PostgresStorage) Close() error {
	return ps.db.Close()
}

// CheckConnection проверяет соединение с базой данных
func (ps *PostgresStorage) CheckConnection(ctx context.Context) error {
	return ps.db.PingContext(ctx)
}
