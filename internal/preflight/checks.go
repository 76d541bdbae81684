package preflight

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"displaysync/internal/failures"
	"displaysync/internal/ini"
	"displaysync/internal/validate"
)

// CheckRegistry verifies that key exists under root and holds every value in names.
func CheckRegistry(store validate.RegistryReader, storeErr error, root, key string, names []string) Result {
	name := "Registry key"
	location := root + `\` + key
	if store == nil {
		detail := "registry unavailable"
		if storeErr != nil {
			detail = storeErr.Error()
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s)", location, detail)}
	}
	if err := validate.RequireRegistryKey(store, key); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s)", location, describe(err))}
	}

	var missing []string
	for _, value := range names {
		err := validate.RequireRegistryValue(store, key, value)
		if err == nil {
			continue
		}
		if !errors.Is(err, failures.ErrMissingStructure) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", location, err)}
		}
		missing = append(missing, value)
	}
	if len(missing) > 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (missing values: %s)", location, strings.Join(missing, ", "))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d values present)", location, len(names))}
}

// CheckIni verifies that path exists and its section holds every key in keys.
func CheckIni(path, section string, keys []string) Result {
	const name = "INI file"
	if err := validate.RequireIniFile(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s)", path, describe(err))}
	}
	file, err := ini.ReadFile(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if err := validate.RequireIniSection(file.Doc, path, section); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: section [%s] not found)", path, section)}
	}

	var missing []string
	for _, key := range keys {
		if err := validate.RequireIniKey(file.Doc, path, section, key); err != nil {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (section [%s] missing keys: %s)", path, section, strings.Join(missing, ", "))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s ([%s] ok, %s)", path, section, file.Encoding)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := checkWritable(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func describe(err error) string {
	var missing *failures.Missing
	if errors.As(err, &missing) {
		switch missing.Kind {
		case failures.MissingRegistryPath:
			return "key does not exist"
		case failures.MissingIniFile:
			return "does not exist"
		}
	}
	return err.Error()
}
