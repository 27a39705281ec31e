package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var logoRowColumns = []string{"id", "user_id", "business_name", "niche", "colors", "image_url", "created_at", "edited"}

func newMockPostgres(t *testing.T) (*PostgresStorage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresStorageWithDB(sqlx.NewDb(db, "sqlmock"), zap.NewNop()), mock
}

func TestPostgresStorage_ListByUser(t *testing.T) {
	ps, mock := newMockPostgres(t)
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(logoRowColumns).
		AddRow(2, "u", "Acme", "Technology", "blue and gold", "https://x/2.png", created, true).
		AddRow(1, "u", "Acme", "Technology", "blue and gold", "https://x/1.png", created, false)
	mock.ExpectQuery(regexp.QuoteMeta(listLogosQuery)).WithArgs("u").WillReturnRows(rows)

	logos, err := ps.ListByUser(context.Background(), "u")
	require.NoError(t, err)
	require.Len(t, logos, 2)
	assert.Equal(t, int64(2), logos[0].ID)
	assert.True(t, logos[0].Edited)
	assert.Equal(t, "https://x/1.png", logos[1].ImageURL)
	assert.Equal(t, created, logos[1].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_ListByUserEmpty(t *testing.T) {
	ps, mock := newMockPostgres(t)
	mock.ExpectQuery(regexp.QuoteMeta(listLogosQuery)).WithArgs("u").
		WillReturnRows(sqlmock.NewRows(logoRowColumns))

	logos, err := ps.ListByUser(context.Background(), "u")
	require.NoError(t, err)
	assert.NotNil(t, logos)
	assert.Empty(t, logos)
}

func TestPostgresStorage_GetNotFound(t *testing.T) {
	ps, mock := newMockPostgres(t)
	mock.ExpectQuery(regexp.QuoteMeta(getLogoQuery)).WithArgs(int64(7), "intruder").
		WillReturnRows(sqlmock.NewRows(logoRowColumns))

	_, err := ps.Get(context.Background(), 7, "intruder")
	assert.ErrorIs(t, err, ErrLogoNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_Get(t *testing.T) {
	ps, mock := newMockPostgres(t)
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(getLogoQuery)).WithArgs(int64(7), "u").
		WillReturnRows(sqlmock.NewRows(logoRowColumns).
			AddRow(7, "u", "Acme", "Technology", "blue and gold", "https://x/1.png", created, false))

	logo, err := ps.Get(context.Background(), 7, "u")
	require.NoError(t, err)
	assert.Equal(t, int64(7), logo.ID)
	assert.Equal(t, "u", logo.UserID)
	assert.Equal(t, "Acme", logo.BusinessName)
}

func TestPostgresStorage_Create(t *testing.T) {
	ps, mock := newMockPostgres(t)
	mock.ExpectQuery(regexp.QuoteMeta(insertLogoQuery)).
		WithArgs("u", "Acme", "Technology", "blue and gold", "https://x/1.png", false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	id, err := ps.Create(context.Background(), acmeLogo("u"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_CreateDriverError(t *testing.T) {
	ps, mock := newMockPostgres(t)
	pqErr := &pq.Error{Code: "23502", Message: "null value in column"}
	mock.ExpectQuery(regexp.QuoteMeta(insertLogoQuery)).WillReturnError(pqErr)

	_, err := ps.Create(context.Background(), acmeLogo("u"))
	require.Error(t, err)

	var got *pq.Error
	assert.True(t, errors.As(err, &got))
}

func TestPostgresStorage_UpdateImage(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "own logo", affected: 1, wantErr: nil},
		{name: "foreign or missing logo", affected: 0, wantErr: ErrLogoNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps, mock := newMockPostgres(t)
			mock.ExpectExec(regexp.QuoteMeta(updateLogoImageQuery)).
				WithArgs("https://x/2.png", true, int64(3), "u").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := ps.UpdateImage(context.Background(), 3, "u", "https://x/2.png", true)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresStorage_Delete(t *testing.T) {
	ps, mock := newMockPostgres(t)
	mock.ExpectExec(regexp.QuoteMeta(deleteLogoQuery)).WithArgs(int64(3), "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(deleteLogoQuery)).WithArgs(int64(3), "u").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.ErrorIs(t, ps.Delete(context.Background(), 3, "intruder"), ErrLogoNotFound)
	assert.NoError(t, ps.Delete(context.Background(), 3, "u"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStorage_CheckConnection(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	ps := NewPostgresStorageWithDB(sqlx.NewDb(db, "sqlmock"), zap.NewNop())

	mock.ExpectPing()
	assert.NoError(t, ps.CheckConnection(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
