//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

const appName = "DraWall"

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// toastScript builds the PowerShell that shows a toast. With an icon the
// ToastImageAndText02 template is used so the saved drawing shows as the
// toast image.
func toastScript(title, body string, opts Options) string {
	var sb strings.Builder
	sb.WriteString(`[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType=Windows Runtime] > $null; `)
	kind := "ToastText02"
	icon := strings.TrimSpace(opts.IconPath)
	if icon != "" {
		kind = "ToastImageAndText02"
	}
	fmt.Fprintf(&sb, `$t = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::%s); `, kind)
	sb.WriteString(`$x = $t.GetElementsByTagName("text"); `)
	fmt.Fprintf(&sb, `$x.Item(0).AppendChild($t.CreateTextNode(%s)) > $null; `, psQuote(title))
	fmt.Fprintf(&sb, `$x.Item(1).AppendChild($t.CreateTextNode(%s)) > $null; `, psQuote(body))
	if icon != "" {
		fmt.Fprintf(&sb, `$t.GetElementsByTagName("image").Item(0).SetAttribute("src", %s); `, psQuote(icon))
	}
	sb.WriteString(`$toast = [Windows.UI.Notifications.ToastNotification]::new($t); `)
	fmt.Fprintf(&sb, `$toast.ExpirationTime = [DateTimeOffset]::Now.AddSeconds(%d); `, int(opts.timeout().Seconds()))
	if opts.Urgency == UrgencyCritical {
		sb.WriteString(`$toast.Priority = [Windows.UI.Notifications.ToastNotificationPriority]::High; `)
	}
	fmt.Fprintf(&sb, `[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(%s).Show($toast);`, psQuote(appName))
	return sb.String()
}

// Notify shows a toast in the Windows notification center.
func Notify(title, body string, opts Options) error {
	return exec.Command("powershell.exe", "-NoProfile", "-Command", toastScript(title, body, opts)).Run()
}
