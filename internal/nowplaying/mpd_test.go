package nowplaying

import (
	"testing"
	"time"

	"github.com/fhs/gompd/v2/mpd"
)

func TestParseMPD(t *testing.T) {
	tests := []struct {
		name   string
		status mpd.Attrs
		song   mpd.Attrs
		want   *Sample
	}{
		{
			name:   "playing",
			status: mpd.Attrs{"state": "play", "elapsed": "61.5", "duration": "245.0"},
			song:   mpd.Attrs{"Title": "Roxanne", "Artist": "The Police", "file": "police/roxanne.flac"},
			want: &Sample{
				Title: "Roxanne", Artist: "The Police", IsPlaying: true,
				Elapsed: 61500 * time.Millisecond, Duration: 245 * time.Second,
			},
		},
		{
			name:   "paused",
			status: mpd.Attrs{"state": "pause", "elapsed": "10", "duration": "20"},
			song:   mpd.Attrs{"Title": "Low"},
			want:   &Sample{Title: "Low", Elapsed: 10 * time.Second, Duration: 20 * time.Second},
		},
		{
			name:   "stopped",
			status: mpd.Attrs{"state": "stop"},
			song:   mpd.Attrs{"Title": "Low"},
			want:   nil,
		},
		{
			name:   "empty playlist",
			status: mpd.Attrs{"state": "play"},
			song:   mpd.Attrs{},
			want:   nil,
		},
		{
			name:   "title from file name",
			status: mpd.Attrs{"state": "play"},
			song:   mpd.Attrs{"file": "music/Joy Division/Disorder.mp3", "duration": "209.3"},
			want: &Sample{
				Title: "Disorder", IsPlaying: true,
				Duration: 209300 * time.Millisecond,
			},
		},
		{
			name:   "legacy time field",
			status: mpd.Attrs{"state": "play", "time": "30:180"},
			song:   mpd.Attrs{"Title": "Heroes"},
			want: &Sample{
				Title: "Heroes", IsPlaying: true,
				Elapsed: 30 * time.Second, Duration: 180 * time.Second,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseMPD(tt.status, tt.song)
			if tt.want == nil {
				if got != nil {
					t.Errorf("parseMPD() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("parseMPD() = nil")
			}
			if *got != *tt.want {
				t.Errorf("parseMPD() = %+v, want %+v", *got, *tt.want)
			}
		})
	}
}
