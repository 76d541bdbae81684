package regstore

import (
	"errors"
	"strconv"
)

// Kind is the storage type of a registry value.
type Kind int

const (
	KindOther Kind = iota
	KindString
	KindDWord
	KindQWord
	KindExpandString
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "REG_SZ"
	case KindDWord:
		return "REG_DWORD"
	case KindQWord:
		return "REG_QWORD"
	case KindExpandString:
		return "REG_EXPAND_SZ"
	default:
		return "other"
	}
}

// Value is a registry value together with its storage kind. Integer is set
// for DWORD and QWORD values, Text for both string kinds.
type Value struct {
	Kind    Kind
	Integer uint64
	Text    string
}

// DWord returns a DWORD value.
func DWord(v uint32) Value { return Value{Kind: KindDWord, Integer: uint64(v)} }

// QWord returns a QWORD value.
func QWord(v uint64) Value { return Value{Kind: KindQWord, Integer: v} }

// String returns a string value.
func String(v string) Value { return Value{Kind: KindString, Text: v} }

// ExpandString returns an expandable string value.
func ExpandString(v string) Value { return Value{Kind: KindExpandString, Text: v} }

// Display renders the value for logs and summaries.
func (v Value) Display() string {
	switch v.Kind {
	case KindDWord, KindQWord:
		return strconv.FormatUint(v.Integer, 10)
	case KindString, KindExpandString:
		return strconv.Quote(v.Text)
	default:
		return "<" + v.Kind.String() + ">"
	}
}

// Store is the registry surface displaysync needs. Paths are relative to the
// store's root key and use backslash separators.
type Store interface {
	// KeyExists reports whether path exists.
	KeyExists(path string) (bool, error)
	// Lookup returns the named value under path. ok is false when either the
	// key or the value does not exist.
	Lookup(path, name string) (value Value, ok bool, err error)
	SetDWord(path, name string, value uint32) error
	SetQWord(path, name string, value uint64) error
	SetString(path, name, value string) error
	SetExpandString(path, name, value string) error
}

// ErrUnsupported is returned by Open on platforms without a registry.
var ErrUnsupported = errors.New("registry access is only available on windows")
