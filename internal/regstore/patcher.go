package regstore

import (
	"fmt"
	"log/slog"
	"strconv"

	"displaysync/internal/failures"
	"displaysync/internal/logging"
)

// RefreshRateName is always written as a DWORD regardless of its existing kind.
const RefreshRateName = "RefreshRate"

// Change describes one value update.
type Change struct {
	Path    string
	Name    string
	Old     Value
	New     Value
	Written bool
}

// Modified reports whether the new value differs from the stored one.
func (c Change) Modified() bool {
	return c.Old != c.New
}

// Patcher overwrites existing values in a Store.
type Patcher struct {
	store  Store
	logger *slog.Logger
}

// NewPatcher returns a Patcher writing to store.
func NewPatcher(store Store, logger *slog.Logger) *Patcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Patcher{store: store, logger: logger}
}

// PatchValue overwrites name under path with value. The value must already
// exist; it is looked up again right before the write. In dry-run mode the
// lookup still happens but nothing is written.
func (p *Patcher) PatchValue(path, name string, value int, dryRun bool) (Change, error) {
	change := Change{Path: path, Name: name}
	if value < 0 {
		return change, failures.Wrap(failures.ErrWrite, "registry", fmt.Sprintf("%s: negative value %d", name, value), nil)
	}

	current, ok, err := p.store.Lookup(path, name)
	if err != nil {
		return change, failures.Wrap(failures.ErrWrite, "registry", "query "+name, err)
	}
	if !ok {
		return change, &failures.Missing{Kind: failures.MissingRegistryValue, Path: path, Name: name}
	}
	change.Old = current

	next, err := targetValue(name, current, value)
	if err != nil {
		return change, err
	}
	change.New = next

	message := fmt.Sprintf("Set registry %s = %s", name, next.Display())
	if dryRun {
		p.logger.Info(message+" (dry run)",
			logging.String("registry_path", path),
			logging.String("kind", next.Kind.String()),
		)
		return change, nil
	}

	switch next.Kind {
	case KindDWord:
		err = p.store.SetDWord(path, name, uint32(next.Integer))
	case KindQWord:
		err = p.store.SetQWord(path, name, next.Integer)
	case KindExpandString:
		err = p.store.SetExpandString(path, name, next.Text)
	default:
		err = p.store.SetString(path, name, next.Text)
	}
	if err != nil {
		return change, failures.Wrap(failures.ErrWrite, "registry", "set "+name, err)
	}
	change.Written = true
	p.logger.Info(message,
		logging.String("registry_path", path),
		logging.String("kind", next.Kind.String()),
	)
	return change, nil
}

func targetValue(name string, current Value, value int) (Value, error) {
	if name == RefreshRateName {
		return DWord(uint32(value)), nil
	}
	switch current.Kind {
	case KindDWord:
		return DWord(uint32(value)), nil
	case KindQWord:
		return QWord(uint64(value)), nil
	case KindString:
		return String(strconv.Itoa(value)), nil
	case KindExpandString:
		return ExpandString(strconv.Itoa(value)), nil
	default:
		return Value{}, failures.Wrap(failures.ErrWrite, "registry",
			fmt.Sprintf("%s has unsupported kind %s", name, current.Kind), nil)
	}
}
