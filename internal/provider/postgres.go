package provider

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresRepository implements Repository on top of PostgreSQL.
type PostgresRepository struct {
	db *sql.DB
}

var _ Repository = (*PostgresRepository)(nil)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Open connects to PostgreSQL and tunes the connection pool.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Provider, error) {
	rows, err := r.db.QueryContext(ctx, `
		select id, name, document, email, phone, created_at, updated_at
		from providers
		order by created_at asc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Provider
	for rows.Next() {
		var p Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.Document, &p.Email, &p.Phone, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*Provider, error) {
	row := r.db.QueryRowContext(ctx, `
		select id, name, document, email, phone, created_at, updated_at
		from providers where id=$1
	`, id)
	var p Provider
	if err := row.Scan(&p.ID, &p.Name, &p.Document, &p.Email, &p.Phone, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) Add(ctx context.Context, p *Provider) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		insert into providers(id, name, document, email, phone, created_at, updated_at)
		values($1,$2,$3,$4,$5,$6,$7)
	`, p.ID, p.Name, p.Document, p.Email, p.Phone, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PostgresRepository) Update(ctx context.Context, p *Provider) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		update providers
		set name=$2, document=$3, email=$4, phone=$5, updated_at=$6
		where id=$1
	`, p.ID, p.Name, p.Document, p.Email, p.Phone, p.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PostgresRepository) Remove(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `delete from providers where id=$1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
