package password

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/chenyu445/toolbox-backend/internal/db"
)

func newTestRepository(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewPostgresRepository(&db.DB{DB: sqlDB}), mock
}

var entryCols = []string{
	"id", "user_id", "title", "placement", "password",
	"expired_at", "note", "created_at", "updated_at",
}

func TestList(t *testing.T) {
	repo, mock := newTestRepository(t)
	now := time.Now()

	mock.ExpectQuery("SELECT COUNT(.+)FROM passwords WHERE user_id").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	mock.ExpectQuery("SELECT(.+)FROM passwords(.+)ORDER BY updated_at DESC").
		WithArgs("user-1", 10, 0).
		WillReturnRows(sqlmock.NewRows(entryCols).
			AddRow("p1", "user-1", "Bank", "", "p@ss", nil, "", now, now).
			AddRow("p2", "user-1", "Mail", "drawer", "s3cret", now, "note", now, now))

	entries, total, err := repo.List(context.Background(), "user-1", 1, 10)
	require.NoError(t, err)
	require.Equal(t, 12, total)
	require.Len(t, entries, 2)
	require.Equal(t, "Bank", entries[0].Title)
	require.Nil(t, entries[0].ExpiredAt)
	require.NotNil(t, entries[1].ExpiredAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListOffset(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("SELECT COUNT(.+)FROM passwords WHERE user_id").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectQuery("SELECT(.+)FROM passwords(.+)ORDER BY updated_at DESC").
		WithArgs("user-1", 5, 10).
		WillReturnRows(sqlmock.NewRows(entryCols))

	entries, total, err := repo.List(context.Background(), "user-1", 3, 5)
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, entries)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, mock := newTestRepository(t)
	now := time.Now()

	mock.ExpectQuery("SELECT(.+)FROM passwords(.+)WHERE id").
		WithArgs("p1", "user-1").
		WillReturnRows(sqlmock.NewRows(entryCols).
			AddRow("p1", "user-1", "Bank", "", "p@ss", nil, "", now, now))

	e, err := repo.GetByID(context.Background(), "p1", "user-1")
	require.NoError(t, err)
	require.NotNil(t, e)
	require.Equal(t, "Bank", e.Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotOwned(t *testing.T) {
	repo, mock := newTestRepository(t)

	// ownership scoping: the filter makes another user's row look absent
	mock.ExpectQuery("SELECT(.+)FROM passwords(.+)WHERE id").
		WithArgs("p1", "user-2").
		WillReturnRows(sqlmock.NewRows(entryCols))

	e, err := repo.GetByID(context.Background(), "p1", "user-2")
	require.NoError(t, err)
	require.Nil(t, e)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEntry(t *testing.T) {
	repo, mock := newTestRepository(t)

	e := Entry{
		ID:       "p1",
		UserID:   "user-1",
		Title:    "Bank",
		Password: "p@ss",
	}

	mock.ExpectExec("INSERT INTO passwords").
		WithArgs("p1", "user-1", "Bank", "", "p@ss", nil, "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), e))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEntry(t *testing.T) {
	repo, mock := newTestRepository(t)

	title := "Bank v2"
	mock.ExpectExec("UPDATE passwords").
		WithArgs("p1", "user-1", "Bank v2", nil, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Update(context.Background(), "p1", "user-1", Update{Title: &title})
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEntryNotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	title := "Bank v2"
	mock.ExpectExec("UPDATE passwords").
		WithArgs("missing", "user-1", "Bank v2", nil, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Update(context.Background(), "missing", "user-1", Update{Title: &title})
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteEntry(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec("DELETE FROM passwords").
		WithArgs("p1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Delete(context.Background(), "p1", "user-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteEntryNotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec("DELETE FROM passwords").
		WithArgs("missing", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Delete(context.Background(), "missing", "user-1")
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEmpty(t *testing.T) {
	require.True(t, Update{}.Empty())

	title := "x"
	require.False(t, Update{Title: &title}.Empty())
}
