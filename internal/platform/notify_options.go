// Package platform delivers desktop notifications through the host's
// notification service.
package platform

import (
	"errors"
	"time"
)

// ErrUnsupported is returned where the host has no notification service.
var ErrUnsupported = errors.New("desktop notifications are not supported")

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName identifies the sender to the notification service.
	AppName string
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Timeout is how long the notification stays up; zero leaves it to the
	// service.
	Timeout time.Duration
}

func (o Options) appName() string {
	if o.AppName == "" {
		return "Whiteboard"
	}
	return o.AppName
}

// deliveryTimeout bounds how long handing the notification to the host may
// block.
func (o Options) deliveryTimeout() time.Duration {
	const floor = 5 * time.Second
	if o.Timeout > floor {
		return o.Timeout
	}
	return floor
}
