package regstore

import (
	"fmt"
	"strings"
	"sync"
)

// Memory is an in-memory Store. Key paths and value names are matched
// case-insensitively, like the Windows registry.
type Memory struct {
	mu     sync.Mutex
	keys   map[string]map[string]Value
	writes int

	// FailWrites, when set, is returned by every Set call.
	FailWrites error
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{keys: make(map[string]map[string]Value)}
}

// AddKey creates path if it does not exist.
func (m *Memory) AddKey(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addKeyLocked(path)
}

// Put stores value under path, creating the key if necessary.
func (m *Memory) Put(path, name string, value Value) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addKeyLocked(path)[fold(name)] = value
}

// Get returns the stored value.
func (m *Memory) Get(path, name string) (Value, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	values, ok := m.keys[fold(path)]
	if !ok {
		return Value{}, false
	}
	v, ok := values[fold(name)]
	return v, ok
}

// Writes reports how many Set calls succeeded.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func (m *Memory) KeyExists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.keys[fold(path)]
	return ok, nil
}

func (m *Memory) Lookup(path, name string) (Value, bool, error) {
	v, ok := m.Get(path, name)
	return v, ok, nil
}

func (m *Memory) SetDWord(path, name string, value uint32) error {
	return m.set(path, name, DWord(value))
}

func (m *Memory) SetQWord(path, name string, value uint64) error {
	return m.set(path, name, QWord(value))
}

func (m *Memory) SetString(path, name, value string) error {
	return m.set(path, name, String(value))
}

func (m *Memory) SetExpandString(path, name, value string) error {
	return m.set(path, name, ExpandString(value))
}

func (m *Memory) set(path, name string, value Value) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	values, ok := m.keys[fold(path)]
	if !ok {
		return fmt.Errorf("open %s for write: key does not exist", path)
	}
	values[fold(name)] = value
	m.writes++
	return nil
}

func (m *Memory) addKeyLocked(path string) map[string]Value {
	values, ok := m.keys[fold(path)]
	if !ok {
		values = make(map[string]Value)
		m.keys[fold(path)] = values
	}
	return values
}

func fold(s string) string {
	return strings.ToLower(strings.Trim(s, `\`))
}
