//go:build darwin

package platform

import (
	"context"
	"fmt"
	"os/exec"
)

// Notify posts to Notification Center through osascript. The sender name is
// shown as the subtitle since scripts cannot choose the posting app.
func Notify(title, body string, opts Options) error {
	ctx, cancel := context.WithTimeout(context.Background(), opts.deliveryTimeout())
	defer cancel()
	script := fmt.Sprintf("display notification %q with title %q subtitle %q", body, title, opts.appName())
	if out, err := exec.CommandContext(ctx, "osascript", "-e", script).CombinedOutput(); err != nil {
		return fmt.Errorf("osascript: %w: %s", err, out)
	}
	return nil
}
