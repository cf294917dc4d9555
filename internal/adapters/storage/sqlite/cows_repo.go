package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"cow-manager/internal/domain/cows"
)

type CowsRepo struct {
	db *sql.DB
}

func NewCowsRepo(db *sql.DB) *CowsRepo {
	return &CowsRepo{db: db}
}

func (r *CowsRepo) Create(ctx context.Context, c cows.Cow) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO cows (cow_id, notes, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (cow_id) DO NOTHING
	`, c.CowID, c.Notes, c.CreatedAt.UTC().Format(tsLayout))
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return cows.ErrDuplicateID
	}
	return nil
}

func (r *CowsRepo) GetByID(ctx context.Context, cowID string) (cows.Cow, error) {
	cowID = strings.TrimSpace(cowID)
	if cowID == "" {
		return cows.Cow{}, cows.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT cow_id, notes, created_at
		FROM cows
		WHERE cow_id = ?
	`, cowID)

	c, err := scanCow(row)
	if err == sql.ErrNoRows {
		return cows.Cow{}, cows.ErrNotFound
	}
	return c, err
}

func (r *CowsRepo) List(ctx context.Context) ([]cows.Cow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT cow_id, notes, created_at
		FROM cows
		ORDER BY created_at, cow_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]cows.Cow, 0)
	for rows.Next() {
		c, err := scanCow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete borra eventos y vaca en una sola transacción.
func (r *CowsRepo) Delete(ctx context.Context, cowID string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE cow_id = ?`, cowID); err != nil {
		return false, err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM cows WHERE cow_id = ?`, cowID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func scanCow(row rowScanner) (cows.Cow, error) {
	var (
		c         cows.Cow
		createdAt string
	)
	if err := row.Scan(&c.CowID, &c.Notes, &createdAt); err != nil {
		return cows.Cow{}, err
	}

	t, err := time.Parse(tsLayout, createdAt)
	if err != nil {
		return cows.Cow{}, err
	}
	c.CreatedAt = t
	return c, nil
}
