package postgres

import (
	"context"
	"database/sql"
	"strings"

	"cow-manager/internal/domain/settings"
)

type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) Get(ctx context.Context, key string) (settings.Setting, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return settings.Setting{}, settings.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT key, value
		FROM settings
		WHERE key = $1
	`, key)

	var st settings.Setting
	if err := row.Scan(&st.Key, &st.Value); err != nil {
		if err == sql.ErrNoRows {
			return settings.Setting{}, settings.ErrNotFound
		}
		return settings.Setting{}, err
	}
	return st, nil
}

func (r *SettingsRepo) Upsert(ctx context.Context, st settings.Setting) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, st.Key, st.Value)
	return err
}

func (r *SettingsRepo) List(ctx context.Context) ([]settings.Setting, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT key, value
		FROM settings
		ORDER BY key
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]settings.Setting, 0)
	for rows.Next() {
		var st settings.Setting
		if err := rows.Scan(&st.Key, &st.Value); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
