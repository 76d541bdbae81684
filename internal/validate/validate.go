package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"displaysync/internal/failures"
	"displaysync/internal/ini"
	"displaysync/internal/regstore"
)

// RegistryReader is the read side of regstore.Store.
type RegistryReader interface {
	KeyExists(path string) (bool, error)
	Lookup(path, name string) (regstore.Value, bool, error)
}

// RequireRegistryKey fails with MissingRegistryPath when path does not exist.
func RequireRegistryKey(store RegistryReader, path string) error {
	ok, err := store.KeyExists(path)
	if err != nil {
		return fmt.Errorf("check registry key %s: %w", path, err)
	}
	if !ok {
		return &failures.Missing{Kind: failures.MissingRegistryPath, Path: path}
	}
	return nil
}

// RequireRegistryValue fails with MissingRegistryValue when name is absent under path.
func RequireRegistryValue(store RegistryReader, path, name string) error {
	_, ok, err := store.Lookup(path, name)
	if err != nil {
		return fmt.Errorf("check registry value %s\\%s: %w", path, name, err)
	}
	if !ok {
		return &failures.Missing{Kind: failures.MissingRegistryValue, Path: path, Name: name}
	}
	return nil
}

// RequireIniFile fails with MissingIniFile when path does not name a regular file.
func RequireIniFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &failures.Missing{Kind: failures.MissingIniFile, Path: path}
	}
	if err != nil {
		return fmt.Errorf("check ini file %s: %w", path, err)
	}
	if info.IsDir() {
		return &failures.Missing{Kind: failures.MissingIniFile, Path: path}
	}
	return nil
}

// RequireIniSection fails with MissingIniSection when doc has no such section.
// path is only used in the error.
func RequireIniSection(doc *ini.Document, path, section string) error {
	if !doc.HasSection(section) {
		return &failures.Missing{Kind: failures.MissingIniSection, Path: path, Section: section}
	}
	return nil
}

// RequireIniKey fails with MissingIniKey when key is absent from section.
func RequireIniKey(doc *ini.Document, path, section, key string) error {
	if _, ok := doc.Lookup(section, key); !ok {
		return &failures.Missing{Kind: failures.MissingIniKey, Path: path, Section: section, Name: key}
	}
	return nil
}

// RequireIniKeys checks the section and then every key in order, returning the
// first failure.
func RequireIniKeys(doc *ini.Document, path, section string, keys []string) error {
	if err := RequireIniSection(doc, path, section); err != nil {
		return err
	}
	for _, key := range keys {
		if err := RequireIniKey(doc, path, section, key); err != nil {
			return err
		}
	}
	return nil
}

// RequireRegistryValues checks the key and then every value name in order,
// returning the first failure.
func RequireRegistryValues(store RegistryReader, path string, names []string) error {
	if err := RequireRegistryKey(store, path); err != nil {
		return err
	}
	for _, name := range names {
		if err := RequireRegistryValue(store, path, name); err != nil {
			return err
		}
	}
	return nil
}
