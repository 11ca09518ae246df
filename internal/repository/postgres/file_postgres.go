package postgres

import (
	"context"
	"database/sql"
	"time"

	"filedrop/internal/model"
	"filedrop/internal/repository"
)

// FilePostgres is a PostgreSQL implementation of repository.FileRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type FilePostgres struct {
	db *sql.DB
}

// NewFilePostgres creates a new FilePostgres repository.
func NewFilePostgres(db *sql.DB) *FilePostgres {
	return &FilePostgres{db: db}
}

var _ repository.FileRepository = (*FilePostgres)(nil)

// Insert stores a new token record row.
func (r *FilePostgres) Insert(ctx context.Context, f *model.File) error {
	const q = `
		INSERT INTO files (id, original_name, mime, size, expires_at, used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, q,
		f.ID,
		f.OriginalName,
		f.Mime,
		f.Size,
		f.ExpiresAt,
		f.Used,
		f.CreatedAt,
	)
	return err
}

// FindByID fetches a single record by its token id.
func (r *FilePostgres) FindByID(ctx context.Context, id string) (*model.File, error) {
	const q = `
		SELECT id, original_name, mime, size, expires_at, used, created_at
		FROM files
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var f model.File
	if err := row.Scan(
		&f.ID,
		&f.OriginalName,
		&f.Mime,
		&f.Size,
		&f.ExpiresAt,
		&f.Used,
		&f.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

// MarkUsed performs the single conditional update that serializes concurrent
// redemptions: only the statement that actually flips the flag reports one
// affected row. The follow-up existence probe only runs on the losing path to
// tell a consumed token apart from an unknown one.
func (r *FilePostgres) MarkUsed(ctx context.Context, id string) (repository.MarkResult, error) {
	const q = `UPDATE files SET used = TRUE WHERE id = $1 AND used = FALSE`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		return repository.MarkSuccess, nil
	}

	const probe = `SELECT EXISTS (SELECT 1 FROM files WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, probe, id).Scan(&exists); err != nil {
		return 0, err
	}
	if exists {
		return repository.MarkAlreadyUsed, nil
	}
	return repository.MarkNotFound, nil
}

// FindExpired lists ids of records past their expiry, oldest first.
func (r *FilePostgres) FindExpired(ctx context.Context, before time.Time, limit int) ([]string, error) {
	const q = `
		SELECT id
		FROM files
		WHERE expires_at < $1
		ORDER BY expires_at ASC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, q, before, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// Delete removes a record by id. It does not return an error if the row does not exist.
func (r *FilePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM files WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
