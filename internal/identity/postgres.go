package identity

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const uniqueViolation = "23505"

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateUser(ctx context.Context, u *User) error {
	_, err := s.db.ExecContext(ctx, `
		insert into users(id, email, password_hash, email_confirmed, failed_logins, locked_until, created_at, updated_at)
		values($1,$2,$3,$4,$5,$6,$7,$8)
	`, u.ID, u.Email, u.PasswordHash, u.EmailConfirmed, u.FailedLogins, u.LockedUntil, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		select id, email, password_hash, email_confirmed, failed_logins, locked_until, created_at, updated_at
		from users where id=$1
	`, id))
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		select id, email, password_hash, email_confirmed, failed_logins, locked_until, created_at, updated_at
		from users where email=$1
	`, email))
}

func (s *PostgresStore) scanUser(row *sql.Row) (*User, error) {
	var u User
	var lockedUntil sql.NullTime
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.EmailConfirmed, &u.FailedLogins, &lockedUntil, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if lockedUntil.Valid {
		t := lockedUntil.Time
		u.LockedUntil = &t
	}
	return &u, nil
}

func (s *PostgresStore) SetLoginState(ctx context.Context, userID string, failed int, lockedUntil *time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		update users set failed_logins=$2, locked_until=$3, updated_at=now() where id=$1
	`, userID, failed, lockedUntil)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Claims(ctx context.Context, userID string) ([]string, error) {
	return s.listStrings(ctx, `select claim from user_claims where user_id=$1 order by claim`, userID)
}

func (s *PostgresStore) GrantClaim(ctx context.Context, userID, claim string) error {
	_, err := s.db.ExecContext(ctx, `
		insert into user_claims(user_id, claim) values($1,$2) on conflict do nothing
	`, userID, claim)
	return err
}

func (s *PostgresStore) Roles(ctx context.Context, userID string) ([]string, error) {
	return s.listStrings(ctx, `select role from user_roles where user_id=$1 order by role`, userID)
}

func (s *PostgresStore) GrantRole(ctx context.Context, userID, role string) error {
	_, err := s.db.ExecContext(ctx, `
		insert into user_roles(user_id, role) values($1,$2) on conflict do nothing
	`, userID, role)
	return err
}

func (s *PostgresStore) listStrings(ctx context.Context, query, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, rows.Err()
}
