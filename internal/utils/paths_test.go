package utils

import (
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/sam")

	tests := []struct {
		in   string
		want string
	}{
		{"~/.config/ritual/ritual.db", filepath.Join("/home/sam", ".config/ritual/ritual.db")},
		{"~", "/home/sam"},
		{"/var/lib/ritual.db", "/var/lib/ritual.db"},
		{"relative/~/x.db", "relative/~/x.db"},
		{"postgres://db/ritual", "postgres://db/ritual"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandHome(tt.in)
			if err != nil {
				t.Fatalf("ExpandHome() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
