package labels

import "strings"

// Inputs are the optional search controls read at trigger time.
type Inputs struct {
	SearchName string `json:"searchName"`
	Filter     string `json:"filter"`
	OrderBy    string `json:"orderBy"`
}

// URLBuilder turns the inputs of one trigger into the URL to fetch.
type URLBuilder interface {
	BuildURL(in Inputs) string
}

// URLBuilderFunc adapts a plain function to URLBuilder.
type URLBuilderFunc func(in Inputs) string

func (f URLBuilderFunc) BuildURL(in Inputs) string { return f(in) }

const (
	DefaultQueryPath = "/main_app/api/record_label/"
	DefaultFixedPath = "/main_app/api/recordlabel/"
)

// QueryURL appends searchName, filter and ordering parameters to base. Every
// non-empty input adds "name=value&", so the result always ends in "?" or
// "&": "/p/?searchName=Atlantic&ordering=name&".
func QueryURL(base string) URLBuilder {
	return URLBuilderFunc(func(in Inputs) string {
		var b strings.Builder
		b.WriteString(base)
		b.WriteByte('?')
		appendParam(&b, "searchName", in.SearchName)
		appendParam(&b, "filter", in.Filter)
		appendParam(&b, "ordering", in.OrderBy)
		return b.String()
	})
}

// FixedURL ignores the inputs and always returns path.
func FixedURL(path string) URLBuilder {
	return URLBuilderFunc(func(Inputs) string { return path })
}

func appendParam(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(EncodeURIComponent(value))
	b.WriteByte('&')
}

const upperhex = "0123456789ABCDEF"

// EncodeURIComponent percent-encodes s the way the JavaScript global of the
// same name does. url.QueryEscape differs on space, '!', '\'', '(', ')', '*'
// and '~'.
func EncodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
