//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
)

// Notify posts to Notification Center through osascript. The saved file
// name, if any, becomes the subtitle; critical messages play an alert.
func Notify(title, body string, opts Options) error {
	script := fmt.Sprintf("display notification %q with title %q", body, title)
	if opts.IconPath != "" {
		script += fmt.Sprintf(" subtitle %q", filepath.Base(opts.IconPath))
	}
	if opts.Urgency == UrgencyCritical {
		script += ` sound name "Basso"`
	}
	return exec.Command("osascript", "-e", script).Run()
}
