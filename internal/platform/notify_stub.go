//go:build !linux && !darwin && !windows

package platform

import (
	"errors"
	"fmt"
)

// Notify reports that desktop notifications are unavailable here.
func Notify(title, body string, opts Options) error {
	return fmt.Errorf("desktop notifications: %w", errors.ErrUnsupported)
}
