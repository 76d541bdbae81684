package display

import (
	"context"
	"fmt"
	"log/slog"

	"displaysync/internal/failures"
	"displaysync/internal/logging"
)

// DefaultRefreshRate is substituted when the refresh rate cannot be detected.
const DefaultRefreshRate = 60

// Info is the primary display's mode. Index is the 0-based position of the
// primary output among the outputs attached to the desktop.
type Info struct {
	Index       int
	Width       int
	Height      int
	ColorDepth  int
	RefreshRate int
	// RefreshRateDefaulted is set when RefreshRate is the fallback value.
	RefreshRateDefaulted bool
}

// Monitor is one output attached to the desktop.
type Monitor struct {
	Name         string
	Description  string
	Primary      bool
	Width        int
	Height       int
	BitsPerPixel int
}

// Enumerator lists attached outputs in OS enumeration order.
type Enumerator interface {
	Monitors(ctx context.Context) ([]Monitor, error)
}

// RefreshSource reports the active refresh rate in Hz.
type RefreshSource interface {
	RefreshRate(ctx context.Context) (int, error)
}

// Probe detects the primary display.
type Probe struct {
	enumerator  Enumerator
	refresh     RefreshSource
	defaultRate int
	logger      *slog.Logger
}

// NewProbe wires a Probe. A non-positive defaultRate selects DefaultRefreshRate.
func NewProbe(enumerator Enumerator, refresh RefreshSource, defaultRate int, logger *slog.Logger) *Probe {
	if defaultRate <= 0 {
		defaultRate = DefaultRefreshRate
	}
	return &Probe{
		enumerator:  enumerator,
		refresh:     refresh,
		defaultRate: defaultRate,
		logger:      logging.NewComponentLogger(logger, "display"),
	}
}

// DetectPrimary returns the primary display's mode. It fails with
// failures.ErrNoPrimaryDisplay when no output carries the primary flag.
func (p *Probe) DetectPrimary(ctx context.Context) (Info, error) {
	monitors, err := p.enumerator.Monitors(ctx)
	if err != nil {
		return Info{}, failures.Wrap(failures.ErrDetection, "display", "enumerate outputs", err)
	}

	index := -1
	for i, m := range monitors {
		if m.Primary {
			index = i
			break
		}
	}
	if index < 0 {
		return Info{}, failures.ErrNoPrimaryDisplay
	}
	primary := monitors[index]
	info := Info{
		Index:      index,
		Width:      primary.Width,
		Height:     primary.Height,
		ColorDepth: primary.BitsPerPixel,
	}

	rate, err := p.queryRefreshRate(ctx)
	switch {
	case err != nil:
		logging.WarnWithContext(p.logger,
			fmt.Sprintf("Could not query refresh rate, defaulting to %d Hz", p.defaultRate),
			"refresh_rate_fallback",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that wmic is available"),
		)
		info.RefreshRate = p.defaultRate
		info.RefreshRateDefaulted = true
	case rate <= 0:
		logging.WarnWithContext(p.logger,
			fmt.Sprintf("Refresh rate reported as %d, defaulting to %d Hz", rate, p.defaultRate),
			"refresh_rate_fallback",
			logging.Int("reported", rate),
		)
		info.RefreshRate = p.defaultRate
		info.RefreshRateDefaulted = true
	default:
		info.RefreshRate = rate
	}

	p.logger.Info(fmt.Sprintf("Primary display: index %d, %dx%d, %d-bit, %d Hz",
		info.Index, info.Width, info.Height, info.ColorDepth, info.RefreshRate),
		logging.String("device", primary.Name),
		logging.Int("outputs", len(monitors)),
	)
	return info, nil
}

func (p *Probe) queryRefreshRate(ctx context.Context) (int, error) {
	if p.refresh == nil {
		return 0, fmt.Errorf("no refresh rate source configured")
	}
	return p.refresh.RefreshRate(ctx)
}
