package tracker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/raysh454/labelboard/internal/labels"
	"github.com/raysh454/labelboard/internal/logging"
)

// SQLiteTracker journals applied renders: one snapshot per render plus the
// diff against the previous snapshot of the same session. It is read for
// inspection only; renders never consult it.
type SQLiteTracker struct {
	db     *sql.DB
	logger logging.Logger
}

// Open opens (or creates) the journal database at path.
func Open(path string, logger logging.Logger) (*SQLiteTracker, error) {
	if path == "" {
		return nil, errors.New("tracker: empty database path")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create tracker directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite serialises writers anyway; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	t, err := New(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return t, nil
}

// New applies the schema to db and returns a tracker over it.
func New(db *sql.DB, logger logging.Logger) (*SQLiteTracker, error) {
	if db == nil {
		return nil, errors.New("tracker: nil db")
	}
	if logger == nil {
		logger = logging.Nop{}
	}
	if err := applySchema(db); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &SQLiteTracker{db: db, logger: logger.With(logging.Field{Key: "component", Value: "tracker"})}, nil
}

// Record stores ev as the newest snapshot of session.
func (t *SQLiteTracker) Record(ctx context.Context, session string, ev labels.RenderEvent) (*Snapshot, error) {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var baseID, baseHTML string
	err = tx.QueryRowContext(ctx,
		`SELECT id, html FROM snapshots WHERE session = ? ORDER BY seq DESC LIMIT 1`,
		session,
	).Scan(&baseID, &baseHTML)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load previous snapshot: %w", err)
	}

	createdAt := ev.RenderedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	id := ev.ID
	if id == "" {
		id = uuid.New().String()
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, session, generation, url, record_count, html, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, session, int64(ev.Generation), ev.URL, ev.Records, ev.HTML, createdAt.UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}

	diffJSON, changes, err := computeDiffJSON(baseID, id, baseHTML, ev.HTML)
	if err != nil {
		return nil, err
	}
	var base any
	if baseID != "" {
		base = baseID
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO diffs (id, base_id, head_id, diff_json, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), base, id, diffJSON, createdAt.UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert diff: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	t.logger.Debug("recorded snapshot",
		logging.Field{Key: "id", Value: id},
		logging.Field{Key: "session", Value: session},
		logging.Field{Key: "changes", Value: len(changes)})

	return &Snapshot{
		ID:         id,
		Session:    session,
		Generation: ev.Generation,
		URL:        ev.URL,
		Records:    ev.Records,
		HTML:       ev.HTML,
		CreatedAt:  createdAt,
		BaseID:     baseID,
		Changes:    changes,
	}, nil
}

// List returns up to limit snapshots, newest first, without HTML. An empty
// session lists every session. limit <= 0 means 50.
func (t *SQLiteTracker) List(ctx context.Context, session string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, session, generation, url, record_count, created_at FROM snapshots`
	args := []any{}
	if session != "" {
		query += ` WHERE session = ?`
		args = append(args, session)
	}
	query += ` ORDER BY seq DESC LIMIT ?`
	args = append(args, limit)

	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	out := []Snapshot{}
	for rows.Next() {
		var s Snapshot
		var gen, created int64
		if err := rows.Scan(&s.ID, &s.Session, &gen, &s.URL, &s.Records, &created); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		s.Generation = uint64(gen)
		s.CreatedAt = time.Unix(0, created).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

// Get returns one snapshot with its HTML and stored changes.
func (t *SQLiteTracker) Get(ctx context.Context, id string) (*Snapshot, error) {
	var s Snapshot
	var gen, created int64
	var baseID sql.NullString
	var diffJSON sql.NullString
	err := t.db.QueryRowContext(ctx,
		`SELECT s.id, s.session, s.generation, s.url, s.record_count, s.html, s.created_at, d.base_id, d.diff_json
         FROM snapshots s
         LEFT JOIN diffs d ON d.head_id = s.id
         WHERE s.id = ?`,
		id,
	).Scan(&s.ID, &s.Session, &gen, &s.URL, &s.Records, &s.HTML, &created, &baseID, &diffJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	s.Generation = uint64(gen)
	s.CreatedAt = time.Unix(0, created).UTC()
	s.BaseID = baseID.String
	if diffJSON.Valid {
		changes, err := decodeDiffJSON(diffJSON.String)
		if err != nil {
			return nil, err
		}
		s.Changes = changes
	}
	return &s, nil
}

func (t *SQLiteTracker) Close() error {
	return t.db.Close()
}
