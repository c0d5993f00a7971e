package tracker

import (
	"errors"
	"time"

	"github.com/raysh454/labelboard/internal/labels"
)

var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one applied render of a target, as stored.
type Snapshot struct {
	ID         string          `json:"id"`
	Session    string          `json:"session"`
	Generation uint64          `json:"generation"`
	URL        string          `json:"url"`
	Records    int             `json:"records"`
	HTML       string          `json:"html,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	BaseID     string          `json:"base_id,omitempty"`
	Changes    []labels.Change `json:"changes,omitempty"`
}
