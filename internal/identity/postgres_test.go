package identity

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "email", "password_hash", "email_confirmed", "failed_logins", "locked_until", "created_at", "updated_at"}

func TestPostgresStoreCreateUserDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("insert into users").
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	store := NewPostgresStore(db)
	now := time.Now().UTC()
	err = store.CreateUser(context.Background(), &User{
		ID: "u1", Email: testEmail, PasswordHash: "hash",
		EmailConfirmed: true, CreatedAt: now, UpdatedAt: now,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreFindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	locked := now.Add(5 * time.Minute)
	mock.ExpectQuery("from users where email").
		WithArgs(testEmail).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u1", testEmail, "hash", true, 0, locked, now, now))

	store := NewPostgresStore(db)
	user, err := store.FindByEmail(context.Background(), testEmail)
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.True(t, user.EmailConfirmed)
	require.NotNil(t, user.LockedUntil)
	assert.True(t, user.LockedAt(now))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreFindByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("from users where id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	store := NewPostgresStore(db)
	_, err = store.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreSetLoginStateMissingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("update users set failed_logins").
		WillReturnResult(sqlmock.NewResult(0, 0))

	store := NewPostgresStore(db)
	err = store.SetLoginState(context.Background(), "missing", 1, nil)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreClaims(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("select claim from user_claims").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"claim"}).AddRow(ClaimDeleteProvider))

	store := NewPostgresStore(db)
	claims, err := store.Claims(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{ClaimDeleteProvider}, claims)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGrantClaimIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("insert into user_claims").
		WithArgs("u1", ClaimDeleteProvider).
		WillReturnResult(sqlmock.NewResult(0, 0))

	store := NewPostgresStore(db)
	assert.NoError(t, store.GrantClaim(context.Background(), "u1", ClaimDeleteProvider))
	require.NoError(t, mock.ExpectationsWereMet())
}
