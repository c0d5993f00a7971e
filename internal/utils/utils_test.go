package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in            string
		defaultScheme string
		want          string
	}{
		{in: "HTTP://Example.COM:80/", want: "http://example.com"},
		{in: "https://example.com:443/app/../api/?x=1#frag", want: "https://example.com/api"},
		{in: "http://localhost:8081", want: "http://localhost:8081"},
		{in: "localhost:8081", defaultScheme: "http", want: "http://localhost:8081"},
		{in: "https://user:pw@example.com/base/", want: "https://example.com/base"},
		{in: "https://例え.テスト", want: "https://xn--r8jz45g.xn--zckzah"},
	}

	for _, tc := range tests {
		got, err := NormalizeBaseURL(tc.in, tc.defaultScheme)
		if err != nil {
			t.Errorf("NormalizeBaseURL(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeBaseURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeBaseURL_Errors(t *testing.T) {
	tests := []struct {
		in      string
		wantErr error
	}{
		{in: "   ", wantErr: ErrEmptyURL},
		{in: "ftp://example.com", wantErr: ErrUnsupportedScheme},
		{in: "http://", wantErr: ErrMissingHost},
		{in: "example.com", wantErr: ErrUnsupportedScheme},
	}

	for _, tc := range tests {
		_, err := NormalizeBaseURL(tc.in, "")
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("NormalizeBaseURL(%q) error = %v, want %v", tc.in, err, tc.wantErr)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}

	got, err := ExpandHome("~/.config/labelboard/history.db")
	if err != nil {
		t.Fatalf("ExpandHome: %v", err)
	}
	if want := filepath.Join(home, ".config/labelboard/history.db"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if got, _ := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute path changed: %q", got)
	}
	if got, _ := ExpandHome("~other/x"); got != "~other/x" {
		t.Errorf("~user path changed: %q", got)
	}
}
