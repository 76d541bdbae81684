//go:build windows

package regstore

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

type windowsStore struct {
	root registry.Key
}

// Open returns a Store rooted at HKCU or HKLM.
func Open(root string) (Store, error) {
	switch root {
	case "HKCU":
		return &windowsStore{root: registry.CURRENT_USER}, nil
	case "HKLM":
		return &windowsStore{root: registry.LOCAL_MACHINE}, nil
	default:
		return nil, fmt.Errorf("unsupported registry root %q", root)
	}
}

func (s *windowsStore) KeyExists(path string) (bool, error) {
	key, err := registry.OpenKey(s.root, path, registry.QUERY_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("open %s: %w", path, err)
	}
	key.Close()
	return true, nil
}

func (s *windowsStore) Lookup(path, name string) (Value, bool, error) {
	key, err := registry.OpenKey(s.root, path, registry.QUERY_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return Value{}, false, nil
	}
	if err != nil {
		return Value{}, false, fmt.Errorf("open %s: %w", path, err)
	}
	defer key.Close()

	_, valType, err := key.GetValue(name, nil)
	if errors.Is(err, registry.ErrNotExist) {
		return Value{}, false, nil
	}
	if err != nil {
		return Value{}, false, fmt.Errorf("query %s\\%s: %w", path, name, err)
	}

	switch valType {
	case registry.SZ, registry.EXPAND_SZ:
		// GetStringValue returns the unexpanded text for REG_EXPAND_SZ.
		text, _, err := key.GetStringValue(name)
		if err != nil {
			return Value{}, false, fmt.Errorf("read %s\\%s: %w", path, name, err)
		}
		if valType == registry.EXPAND_SZ {
			return ExpandString(text), true, nil
		}
		return String(text), true, nil
	case registry.DWORD, registry.QWORD:
		n, _, err := key.GetIntegerValue(name)
		if err != nil {
			return Value{}, false, fmt.Errorf("read %s\\%s: %w", path, name, err)
		}
		if valType == registry.DWORD {
			return Value{Kind: KindDWord, Integer: n}, true, nil
		}
		return Value{Kind: KindQWord, Integer: n}, true, nil
	default:
		return Value{Kind: KindOther}, true, nil
	}
}

func (s *windowsStore) SetDWord(path, name string, value uint32) error {
	return s.set(path, func(k registry.Key) error { return k.SetDWordValue(name, value) })
}

func (s *windowsStore) SetQWord(path, name string, value uint64) error {
	return s.set(path, func(k registry.Key) error { return k.SetQWordValue(name, value) })
}

func (s *windowsStore) SetString(path, name, value string) error {
	return s.set(path, func(k registry.Key) error { return k.SetStringValue(name, value) })
}

func (s *windowsStore) SetExpandString(path, name, value string) error {
	return s.set(path, func(k registry.Key) error { return k.SetExpandStringValue(name, value) })
}

func (s *windowsStore) set(path string, write func(registry.Key) error) error {
	key, err := registry.OpenKey(s.root, path, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("open %s for write: %w", path, err)
	}
	defer key.Close()
	return write(key)
}
