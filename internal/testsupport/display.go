package testsupport

import (
	"context"

	"displaysync/internal/display"
	"displaysync/internal/regstore"
)

// GameRegistryKey is the key GameRegistry populates.
const GameRegistryKey = `Software\Vendor\Game`

// GameRegistry returns an in-memory registry holding the five display values
// as DWORDs, matching PlayerIni.
func GameRegistry() *regstore.Memory {
	store := regstore.NewMemory()
	store.Put(GameRegistryKey, "Display", regstore.DWord(0))
	store.Put(GameRegistryKey, "Height", regstore.DWord(1080))
	store.Put(GameRegistryKey, "Width", regstore.DWord(1920))
	store.Put(GameRegistryKey, "RefreshRate", regstore.DWord(60))
	store.Put(GameRegistryKey, "ColorDepth", regstore.DWord(32))
	return store
}

// StaticProbe returns a fixed detection result.
type StaticProbe struct {
	Info  display.Info
	Err   error
	Calls int
}

// DetectPrimary implements the orchestrator's detector.
func (p *StaticProbe) DetectPrimary(context.Context) (display.Info, error) {
	p.Calls++
	return p.Info, p.Err
}

// WidescreenInfo is a 2560x1440 144 Hz primary display at index 1.
func WidescreenInfo() display.Info {
	return display.Info{Index: 1, Width: 2560, Height: 1440, ColorDepth: 32, RefreshRate: 144}
}
