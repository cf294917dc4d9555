package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"cow-manager/internal/domain/herd"
)

type EventsRepo struct {
	db *sql.DB
}

func NewEventsRepo(db *sql.DB) *EventsRepo {
	return &EventsRepo{db: db}
}

const eventColumns = `
	id, cow_id,
	event_type, event_date, source,
	descriptions, days_offset, meta,
	recorded_at
`

func (r *EventsRepo) Create(ctx context.Context, e herd.Event) error {
	descriptions, meta, err := encodeMaps(e)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		e.ID,
		e.CowID,
		string(e.Type),
		e.Date,
		string(e.Source),
		descriptions,
		e.DaysOffset,
		meta,
		e.RecordedAt,
	)
	return err
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (herd.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return herd.Event{}, herd.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE id = $1
	`, id)

	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return herd.Event{}, herd.ErrNotFound
	}
	return e, err
}

func (r *EventsRepo) Update(ctx context.Context, e herd.Event) error {
	descriptions, meta, err := encodeMaps(e)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE events
		SET cow_id = $2,
		    event_type = $3,
		    event_date = $4,
		    source = $5,
		    descriptions = $6,
		    days_offset = $7,
		    meta = $8,
		    recorded_at = $9
		WHERE id = $1
	`,
		e.ID,
		e.CowID,
		string(e.Type),
		e.Date,
		string(e.Source),
		descriptions,
		e.DaysOffset,
		meta,
		e.RecordedAt,
	)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return herd.ErrNotFound
	}
	return nil
}

func (r *EventsRepo) ListByCow(ctx context.Context, cowID string) ([]herd.Event, error) {
	return r.list(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE cow_id = $1
		ORDER BY event_date, recorded_at, id
	`, cowID)
}

func (r *EventsRepo) ListAll(ctx context.Context) ([]herd.Event, error) {
	return r.list(ctx, `
		SELECT `+eventColumns+`
		FROM events
		ORDER BY event_date, recorded_at, id
	`)
}

func (r *EventsRepo) ListByType(ctx context.Context, t herd.EventType) ([]herd.Event, error) {
	return r.list(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE event_type = $1
		ORDER BY event_date, recorded_at, id
	`, string(t))
}

func (r *EventsRepo) FindGenerated(ctx context.Context, cowID string, t herd.EventType) (herd.Event, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE cow_id = $1 AND event_type = $2 AND source = $3
		ORDER BY recorded_at, id
		LIMIT 1
	`, cowID, string(t), string(herd.SourceGenerated))

	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return herd.Event{}, herd.ErrNotFound
	}
	return e, err
}

func (r *EventsRepo) FindByKey(ctx context.Context, cowID string, t herd.EventType, date time.Time) (herd.Event, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE cow_id = $1 AND event_type = $2 AND event_date = $3
		ORDER BY recorded_at, id
		LIMIT 1
	`, cowID, string(t), date)

	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return herd.Event{}, herd.ErrNotFound
	}
	return e, err
}

// ReplaceGenerated hace el wipe + insert dentro de una transacción.
func (r *EventsRepo) ReplaceGenerated(ctx context.Context, cowID string, evs []herd.Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM events
		WHERE cow_id = $1 AND source = $2
	`, cowID, string(herd.SourceGenerated)); err != nil {
		return err
	}

	for _, e := range evs {
		descriptions, meta, err := encodeMaps(e)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO events (`+eventColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`,
			e.ID,
			e.CowID,
			string(e.Type),
			e.Date,
			string(e.Source),
			descriptions,
			e.DaysOffset,
			meta,
			e.RecordedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *EventsRepo) list(ctx context.Context, query string, args ...any) ([]herd.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]herd.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (herd.Event, error) {
	var (
		e                  herd.Event
		typ, source        string
		descriptions, meta string
	)

	if err := row.Scan(
		&e.ID,
		&e.CowID,
		&typ,
		&e.Date,
		&source,
		&descriptions,
		&e.DaysOffset,
		&meta,
		&e.RecordedAt,
	); err != nil {
		return herd.Event{}, err
	}

	e.Type = herd.EventType(typ)
	e.Source = herd.Source(source)
	// DATE vuelve como instante en la zona del driver; se normaliza a
	// fecha de calendario.
	e.Date = herd.DateOnly(e.Date)

	if descriptions != "" {
		if err := json.Unmarshal([]byte(descriptions), &e.Descriptions); err != nil {
			return herd.Event{}, err
		}
	}
	if meta != "" {
		if err := json.Unmarshal([]byte(meta), &e.Meta); err != nil {
			return herd.Event{}, err
		}
	}
	return e, nil
}

// encodeMaps serializa los mapas a JSON; vacío se guarda como ''.
func encodeMaps(e herd.Event) (descriptions, meta string, err error) {
	if len(e.Descriptions) > 0 {
		b, err := json.Marshal(e.Descriptions)
		if err != nil {
			return "", "", err
		}
		descriptions = string(b)
	}
	if len(e.Meta) > 0 {
		b, err := json.Marshal(e.Meta)
		if err != nil {
			return "", "", err
		}
		meta = string(b)
	}
	return descriptions, meta, nil
}
