package tracker

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/raysh454/labelboard/internal/labels"
)

//go:embed schema.sql
var schemaFS embed.FS

// applySchema applies the SQLite schema to the database and sets appropriate pragmas.
func applySchema(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}

	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

type diffDoc struct {
	BaseID  string          `json:"base_id,omitempty"`
	HeadID  string          `json:"head_id,omitempty"`
	Changes []labels.Change `json:"changes"`
}

// computeDiffJSON diffs two stored renders and encodes the result.
func computeDiffJSON(baseID, headID, base, head string) (string, []labels.Change, error) {
	changes := labels.Diff(base, head)
	if changes == nil {
		changes = []labels.Change{}
	}

	data, err := json.Marshal(diffDoc{BaseID: baseID, HeadID: headID, Changes: changes})
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal diff: %w", err)
	}
	return string(data), changes, nil
}

func decodeDiffJSON(s string) ([]labels.Change, error) {
	var doc diffDoc
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		return nil, fmt.Errorf("decode diff: %w", err)
	}
	return doc.Changes, nil
}
