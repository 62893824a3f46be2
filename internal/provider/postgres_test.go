package provider

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var providerColumns = []string{"id", "name", "document", "email", "phone", "created_at", "updated_at"}

func TestPostgresRepositoryList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("select id, name, document, email, phone, created_at, updated_at").
		WillReturnRows(sqlmock.NewRows(providerColumns).
			AddRow("p1", "Acme", "12345", "a@acme.example", "", now, now).
			AddRow("p2", "Globex", "67890", "", "555", now, now))

	repo := NewPostgresRepository(db)
	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, "Globex", items[1].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("from providers where id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	repo := NewPostgresRepository(db)
	_, err = repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryAdd(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	p := Provider{ID: "p1", Name: "Acme", Document: "12345", CreatedAt: now, UpdatedAt: now}
	mock.ExpectExec("insert into providers").
		WithArgs(p.ID, p.Name, p.Document, p.Email, p.Phone, p.CreatedAt, p.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresRepository(db)
	affected, err := repo.Add(context.Background(), &p)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryUpdateReportsAffectedCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	p := Provider{ID: "gone", Name: "Acme", Document: "12345", UpdatedAt: now}
	mock.ExpectExec("update providers").
		WithArgs(p.ID, p.Name, p.Document, p.Email, p.Phone, p.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresRepository(db)
	affected, err := repo.Update(context.Background(), &p)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryRemove(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("delete from providers").
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresRepository(db)
	affected, err := repo.Remove(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}
