package demoserver

import (
	"sort"
	"strconv"
	"strings"
)

// RecordLabel mirrors the record label resource the page host consumes.
// Field order is the JSON key order.
type RecordLabel struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
}

// DefaultRecordLabels returns the canned fixture list.
func DefaultRecordLabels() []RecordLabel {
	return []RecordLabel{
		{ID: 1, Name: "Atlantic Records", Address: "1633 Broadway, New York, NY 10019", Email: "info@atlantic.example"},
		{ID: 2, Name: "Motown", Address: "2648 W Grand Blvd, Detroit, MI 48208", Email: "hello@motown.example"},
		{ID: 3, Name: "Sub Pop", Address: "2013 4th Ave, Seattle, WA 98121", Email: "mail@subpop.example"},
		{ID: 4, Name: "Blue Note", Address: "1750 N Vine St, Los Angeles, CA 90028", Email: "contact@bluenote.example"},
		{ID: 5, Name: "Sun Records", Address: "706 Union Ave, Memphis, TN 38103", Email: "studio@sun.example"},
		{ID: 6, Name: "Rough Trade", Address: "66 Golborne Rd, London W10 5PS", Email: "office@roughtrade.example"},
	}
}

func (l RecordLabel) field(name string) (string, bool) {
	switch name {
	case "id":
		return strconv.Itoa(l.ID), true
	case "name":
		return l.Name, true
	case "address":
		return l.Address, true
	case "email":
		return l.Email, true
	}
	return "", false
}

// Query applies the fixture filters: searchName matches name, filter matches
// any field, both case-insensitive substrings. ordering names a field, with a
// leading "-" for descending; unknown fields leave the order alone.
func Query(all []RecordLabel, searchName, filter, ordering string) []RecordLabel {
	searchName = strings.ToLower(searchName)
	filter = strings.ToLower(filter)

	out := make([]RecordLabel, 0, len(all))
	for _, l := range all {
		if searchName != "" && !strings.Contains(strings.ToLower(l.Name), searchName) {
			continue
		}
		if filter != "" && !l.matchesAny(filter) {
			continue
		}
		out = append(out, l)
	}

	desc := strings.HasPrefix(ordering, "-")
	field := strings.TrimPrefix(ordering, "-")
	if _, ok := (RecordLabel{}).field(field); !ok {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if field == "id" {
			if desc {
				return out[i].ID > out[j].ID
			}
			return out[i].ID < out[j].ID
		}
		a, _ := out[i].field(field)
		b, _ := out[j].field(field)
		a, b = strings.ToLower(a), strings.ToLower(b)
		if desc {
			return a > b
		}
		return a < b
	})
	return out
}

func (l RecordLabel) matchesAny(needle string) bool {
	for _, name := range []string{"id", "name", "address", "email"} {
		v, _ := l.field(name)
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}
