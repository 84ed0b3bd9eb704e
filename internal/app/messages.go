package app

import (
	"time"

	"github.com/joshuajeong1/musicmap/internal/errmsg"
	"github.com/joshuajeong1/musicmap/internal/markers"
)

// TickMsg is sent every second to refresh the song and statistics.
type TickMsg time.Time

// ControlDoneMsg reports the result of a playback control request.
type ControlDoneMsg struct {
	Op  errmsg.Op
	Err error
}

// ClearDoneMsg reports the result of clearing listening data.
type ClearDoneMsg struct {
	Err error
}

// MapBuiltMsg carries a finished map build. Version discards stale builds.
type MapBuiltMsg struct {
	View    markers.MapView
	Version int
}
