//go:build windows

package platform

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// psQuote wraps s as a single-quoted PowerShell literal.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Notify displays a toast notification using the Windows notification center.
func Notify(title, body string, opts Options) error {
	script := fmt.Sprintf(`[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType=Windows Runtime] > $null; `+
		`$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02); `+
		`$texts = $template.GetElementsByTagName("text"); `+
		`$texts.Item(0).AppendChild($template.CreateTextNode(%s)) > $null; `+
		`$texts.Item(1).AppendChild($template.CreateTextNode(%s)) > $null; `+
		`$toast = [Windows.UI.Notifications.ToastNotification]::new($template); `+
		`[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(%s).Show($toast);`,
		psQuote(title), psQuote(body), psQuote(opts.appName()))
	ctx, cancel := context.WithTimeout(context.Background(), opts.deliveryTimeout())
	defer cancel()
	if err := exec.CommandContext(ctx, "powershell.exe", "-NoProfile", "-Command", script).Run(); err != nil {
		return fmt.Errorf("toast: %w", err)
	}
	return nil
}
