// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit     Action = "quit"
	ActionNextPage Action = "next_page"
	ActionPrevPage Action = "prev_page"

	// Page switching
	ActionPageNowPlaying Action = "page_now_playing"
	ActionPageHabits     Action = "page_habits"
	ActionPageLocations  Action = "page_locations"
	ActionPageMap        Action = "page_map"

	// Playback control
	ActionPlayPause Action = "play_pause"
	ActionNextTrack Action = "next_track"
	ActionPrevTrack Action = "prev_track"

	// Listening data
	ActionClearData Action = "clear_data" // C, asks for confirmation first
	ActionConfirm   Action = "confirm"

	// Location list
	ActionMoveUp   Action = "move_up"
	ActionMoveDown Action = "move_down"
	ActionSelect   Action = "select"
	ActionBack     Action = "back"

	// Map
	ActionToggleLabels Action = "toggle_labels"
	ActionRefreshMap   Action = "refresh_map"
)
