package icons

import "testing"

func TestInit(t *testing.T) {
	t.Cleanup(func() { Init("none") })

	tests := []struct {
		style string
		want  Icons
	}{
		{"nerd", nerdIcons},
		{"unicode", unicodeIcons},
		{"none", noneIcons},
		{"", noneIcons},
		{"fancy", noneIcons},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			Init(tt.style)
			if current != tt.want {
				t.Errorf("Init(%q) selected %+v, want %+v", tt.style, current, tt.want)
			}
		})
	}
}

func TestFormat_None(t *testing.T) {
	Init("none")

	if got := FormatTrack("Roxanne"); got != "Roxanne" {
		t.Errorf("FormatTrack = %q", got)
	}
	if got := FormatArtist("The Police"); got != "The Police" {
		t.Errorf("FormatArtist = %q", got)
	}
	if got := FormatLocation("Tempe"); got != "Tempe" {
		t.Errorf("FormatLocation = %q", got)
	}
}

func TestFormat_Unicode(t *testing.T) {
	Init("unicode")
	t.Cleanup(func() { Init("none") })

	if got := FormatTrack("Roxanne"); got != "🎵 Roxanne" {
		t.Errorf("FormatTrack = %q", got)
	}
	if got := FormatLocation("Tempe"); got != "📍 Tempe" {
		t.Errorf("FormatLocation = %q", got)
	}
}

func TestStatus(t *testing.T) {
	Init("none")
	if Status(true) != "▶" || Status(false) != "⏸" {
		t.Errorf("Status = %q/%q", Status(true), Status(false))
	}

	Init("nerd")
	t.Cleanup(func() { Init("none") })
	if Status(true) != nerdIcons.Playing {
		t.Errorf("nerd Status(true) = %q", Status(true))
	}
}
