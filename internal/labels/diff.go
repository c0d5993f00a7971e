package labels

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Change is one added or removed chunk between two renders of a target.
type Change struct {
	Type string `json:"type"` // "added" or "removed"
	Text string `json:"text"`
}

// Diff compares two inner-HTML snapshots. Equal and whitespace-only chunks
// are dropped.
func Diff(prev, next string) []Change {
	if prev == next {
		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(prev, next, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	changes := make([]Change, 0, len(diffs))
	for _, d := range diffs {
		var typ string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			typ = "added"
		case diffmatchpatch.DiffDelete:
			typ = "removed"
		default:
			continue
		}
		if strings.TrimSpace(d.Text) == "" {
			continue
		}
		changes = append(changes, Change{Type: typ, Text: d.Text})
	}
	return changes
}
