package ini

import (
	"fmt"
	"os"

	"displaysync/internal/fileutil"
)

// File is an INI file loaded from disk together with what is needed to write
// it back in the same shape.
type File struct {
	Path     string
	Doc      *Document
	Encoding Encoding
	Mode     os.FileMode
}

// ReadFile loads and parses path. A missing file is returned as an error
// satisfying errors.Is(err, fs.ErrNotExist).
func ReadFile(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, enc, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &File{
		Path:     path,
		Doc:      Parse(text),
		Encoding: enc,
		Mode:     info.Mode().Perm(),
	}, nil
}

// Render joins lines and encodes them the way the file was read.
func (f *File) Render(lines []string) ([]byte, error) {
	return Encode(Join(lines), f.Encoding)
}

// Save replaces the file's contents with lines.
func (f *File) Save(lines []string) error {
	data, err := f.Render(lines)
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(f.Path, data, f.Mode)
}

// Backup copies the current file to path+".bak".
func (f *File) Backup() (string, error) {
	dst := f.Path + ".bak"
	if err := fileutil.CopyFileVerified(f.Path, dst, f.Mode|0o600); err != nil {
		return "", fmt.Errorf("backup %s: %w", f.Path, err)
	}
	return dst, nil
}
