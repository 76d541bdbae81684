//go:build !windows

package regstore

// Open always fails outside Windows.
func Open(root string) (Store, error) {
	return nil, ErrUnsupported
}
