package reconcile

import (
	"strconv"

	"displaysync/internal/display"
	"displaysync/internal/ini"
)

// Key names shared by the registry and the INI section.
const (
	KeyDisplay     = "Display"
	KeyHeight      = "Height"
	KeyWidth       = "Width"
	KeyRefreshRate = "RefreshRate"
	KeyColorDepth  = "ColorDepth"
)

// UpdateSet holds the values written to both stores.
type UpdateSet struct {
	Display     int
	Height      int
	Width       int
	RefreshRate int
	ColorDepth  int
}

// Pair is one named value of an UpdateSet.
type Pair struct {
	Key   string
	Value int
}

// FromDisplay builds the update set for a detected display.
func FromDisplay(info display.Info) UpdateSet {
	return UpdateSet{
		Display:     info.Index,
		Height:      info.Height,
		Width:       info.Width,
		RefreshRate: info.RefreshRate,
		ColorDepth:  info.ColorDepth,
	}
}

// Pairs returns the values in write order.
func (u UpdateSet) Pairs() []Pair {
	return []Pair{
		{KeyDisplay, u.Display},
		{KeyHeight, u.Height},
		{KeyWidth, u.Width},
		{KeyRefreshRate, u.RefreshRate},
		{KeyColorDepth, u.ColorDepth},
	}
}

// Keys returns the key names in write order.
func (u UpdateSet) Keys() []string {
	pairs := u.Pairs()
	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = p.Key
	}
	return keys
}

// KeyValues renders the set as INI assignments.
func (u UpdateSet) KeyValues() []ini.KeyValue {
	pairs := u.Pairs()
	out := make([]ini.KeyValue, len(pairs))
	for i, p := range pairs {
		out[i] = ini.KeyValue{Key: p.Key, Value: strconv.Itoa(p.Value)}
	}
	return out
}
