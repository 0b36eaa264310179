package main

import "testing"

func TestCleanClipboardText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "idea", "idea"},
		{"line endings and tabs", "  a\r\nb\tc\r", "a\nb c"},
		{"control characters", "a\x07b", "ab"},
		{"html", "<div>Tom &amp; Jerry</div>", "Tom & Jerry"},
		{"rtf", `{\rtf1\ansi Hello\par World}`, "Hello\nWorld"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanClipboardText(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
