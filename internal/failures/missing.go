package failures

import "fmt"

// MissingKind identifies which kind of pre-existing structure was absent.
type MissingKind string

const (
	MissingRegistryPath  MissingKind = "MissingRegistryPath"
	MissingRegistryValue MissingKind = "MissingRegistryValue"
	MissingIniFile       MissingKind = "MissingIniFile"
	MissingIniSection    MissingKind = "MissingIniSection"
	MissingIniKey        MissingKind = "MissingIniKey"
)

// Missing reports a registry path/value or INI file/section/key that must exist
// before displaysync will write anything. It matches ErrMissingStructure.
type Missing struct {
	Kind MissingKind
	// Path is the registry key path or the INI file path.
	Path string
	// Section is set for INI section and key failures.
	Section string
	// Name is the registry value name or INI key.
	Name string
}

func (m *Missing) Error() string {
	switch m.Kind {
	case MissingRegistryPath:
		return fmt.Sprintf("%s(%q): registry key does not exist", m.Kind, m.Path)
	case MissingRegistryValue:
		return fmt.Sprintf("%s(%q,%q): registry value does not exist", m.Kind, m.Name, m.Path)
	case MissingIniFile:
		return fmt.Sprintf("%s(%q): INI file does not exist", m.Kind, m.Path)
	case MissingIniSection:
		return fmt.Sprintf("%s(%q): section not found in %s", m.Kind, m.Section, m.Path)
	case MissingIniKey:
		return fmt.Sprintf("%s(%q,%q): key not found in %s", m.Kind, m.Name, m.Section, m.Path)
	default:
		return fmt.Sprintf("%s: %s %s %s", m.Kind, m.Path, m.Section, m.Name)
	}
}

// Is lets errors.Is(err, ErrMissingStructure) match every Missing value.
func (m *Missing) Is(target error) bool {
	return target == ErrMissingStructure
}
