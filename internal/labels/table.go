package labels

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/raysh454/labelboard/internal/model"
)

// NoRecordsMessage is shown when the endpoint returns an empty array.
const NoRecordsMessage = "No record labels found."

// CapitalizeHeader upper-cases the first character of key and leaves the
// rest alone: "label_name" becomes "Label_name".
func CapitalizeHeader(key string) string {
	r, size := utf8.DecodeRuneInString(key)
	if size == 0 || r == utf8.RuneError {
		return key
	}
	return strings.ToUpper(string(r)) + key[size:]
}

// BuildTable builds a bare <table>: a header row from the first record's keys
// followed by one row per record, cells in each record's own field order.
// No records yields an empty table.
func BuildTable(records []model.Record) *html.Node {
	table := element(atom.Table)
	if len(records) == 0 {
		return table
	}

	header := element(atom.Tr)
	for _, key := range records[0].Keys() {
		header.AppendChild(textElement(atom.Th, CapitalizeHeader(key)))
	}
	table.AppendChild(header)

	for _, rec := range records {
		row := element(atom.Tr)
		for _, v := range rec.Values() {
			row.AppendChild(textElement(atom.Td, v))
		}
		table.AppendChild(row)
	}
	return table
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func textElement(a atom.Atom, text string) *html.Node {
	n := element(a)
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return n
}
