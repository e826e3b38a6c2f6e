package output

import (
	"testing"
	"time"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{-1, "0 B"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatDateTime(t *testing.T) {
	ptr := func(s string) *string { return &s }

	tests := []struct {
		name string
		raw  *string
		want string
	}{
		{"nil", nil, "N/A"},
		{"empty", ptr(""), "N/A"},
		{"valid", ptr("2024-03-05 07:08:09,123"), "05.03.2024 07:08:09"},
		{"impossible date", ptr("2024-13-45 99:00:00,000"), "Invalid Date"},
		{"zero date", ptr("0000-00-00 00:00:00,000"), "Invalid Date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDateTime(tt.raw, time.UTC); got != tt.want {
				t.Errorf("FormatDateTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatDateTime_NilLocation(t *testing.T) {
	raw := "2024-03-05 07:08:09,123"
	if got := FormatDateTime(&raw, nil); got != "05.03.2024 07:08:09" {
		t.Errorf("FormatDateTime() = %q", got)
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1234, "1,234"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		if got := FormatCount(tt.n); got != tt.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
