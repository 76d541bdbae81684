package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Destination selects where log records are written.
type Destination string

const (
	DestinationConsole Destination = "console"
	DestinationFile    Destination = "file"
)

// DefaultTimestampLayout renders "YYYY-MM-DD HH:MM:SS".
const DefaultTimestampLayout = "2006-01-02 15:04:05"

// Options describes logger construction parameters.
type Options struct {
	Destination     Destination
	Path            string
	TimestampLayout string
	Level           string
	Format          string
	// Console overrides os.Stdout for the console destination.
	Console io.Writer
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	level := parseLevel(opts.Level)
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	writer, err := openWriter(opts)
	if err != nil {
		return nil, err
	}

	layout := opts.TimestampLayout
	if strings.TrimSpace(layout) == "" {
		layout = DefaultTimestampLayout
	}

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = newJSONHandler(writer, levelVar)
	case "console":
		handler = newLineHandler(writer, levelVar, layout)
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
	return slog.New(handler), nil
}

func openWriter(opts Options) (io.Writer, error) {
	dest := opts.Destination
	if dest == "" {
		dest = DestinationConsole
	}
	switch dest {
	case DestinationConsole:
		if opts.Console != nil {
			return opts.Console, nil
		}
		return os.Stdout, nil
	case DestinationFile:
		path := strings.TrimSpace(opts.Path)
		if path == "" {
			return nil, errors.New("log file path is required for file destination")
		}
		if err := ensureLogDir(path); err != nil {
			return nil, err
		}
		return newAppendWriter(path), nil
	default:
		return nil, fmt.Errorf("log destination: unsupported value %q", opts.Destination)
	}
}

// ensureLogDir requires the directory to exist already; the log lives beside
// the INI file and must not create directories on its own.
func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("log directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("log directory %s is not a directory", dir)
	}
	return nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
