//go:build windows

package preflight

import "golang.org/x/sys/windows"

// Directory access rights from winnt.h.
const (
	fileListDirectory = 0x0001
	fileAddFile       = 0x0002
)

// checkWritable opens the directory asking for list and add-file rights. The
// ACL check happens at open time, so nothing is created inside path.
func checkWritable(path string) error {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	h, err := windows.CreateFile(name,
		fileListDirectory|fileAddFile,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
	if err != nil {
		return err
	}
	return windows.CloseHandle(h)
}
