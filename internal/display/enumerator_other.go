//go:build !windows

package display

import (
	"context"
	"errors"
)

// ErrUnsupported is returned by the system enumerator outside Windows.
var ErrUnsupported = errors.New("display enumeration is only available on windows")

type systemEnumerator struct{}

// NewSystemEnumerator returns an enumerator that always fails on this platform.
func NewSystemEnumerator() Enumerator {
	return systemEnumerator{}
}

func (systemEnumerator) Monitors(context.Context) ([]Monitor, error) {
	return nil, ErrUnsupported
}
