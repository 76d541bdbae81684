//go:build !windows

package preflight

import "golang.org/x/sys/unix"

func checkWritable(path string) error {
	return unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK)
}
