package keymap

import "strings"

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "locations", "map", "confirm"
}

// All contains every key binding, used for dispatch and the help line.
var All = []Binding{
	{ActionQuit, []string{"q", "ctrl+c"}, "quit", "global"},
	{ActionNextPage, []string{"tab"}, "next page", "global"},
	{ActionPrevPage, []string{"shift+tab"}, "previous page", "global"},
	{ActionPageNowPlaying, []string{"f1"}, "now playing", "global"},
	{ActionPageHabits, []string{"f2"}, "habits", "global"},
	{ActionPageLocations, []string{"f3"}, "locations", "global"},
	{ActionPageMap, []string{"f4"}, "map", "global"},
	{ActionClearData, []string{"C"}, "clear data", "global"},

	{ActionPlayPause, []string{" "}, "play/pause", "playback"},
	{ActionNextTrack, []string{"n"}, "next", "playback"},
	{ActionPrevTrack, []string{"p"}, "previous", "playback"},

	{ActionMoveUp, []string{"k", "up"}, "up", "locations"},
	{ActionMoveDown, []string{"j", "down"}, "down", "locations"},
	{ActionSelect, []string{"enter", "l", "right"}, "details", "locations"},
	{ActionBack, []string{"esc", "h", "left", "backspace"}, "back", "locations"},

	{ActionToggleLabels, []string{"t"}, "track/artist labels", "map"},
	{ActionRefreshMap, []string{"r"}, "refresh", "map"},

	{ActionConfirm, []string{"y", "Y"}, "confirm", "confirm"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Help renders the bindings of context as "key desc · key desc".
func Help(context string) string {
	bindings := ByContext(context)
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, displayKey(b.Keys[0])+" "+b.Description)
	}
	return strings.Join(parts, " · ")
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]Action
}

// NewResolver creates a resolver from bindings. A key bound twice resolves
// to its last binding.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{bindings: make(map[string]Action)}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.bindings[key] = b.Action
		}
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}
