package platform

import (
	"testing"
	"time"
)

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if o.appName() != "Whiteboard" {
		t.Fatalf("appName = %q", o.appName())
	}
	if o.deliveryTimeout() != 5*time.Second {
		t.Fatalf("deliveryTimeout = %v", o.deliveryTimeout())
	}
	o = Options{AppName: "Board", Timeout: time.Minute}
	if o.appName() != "Board" || o.deliveryTimeout() != time.Minute {
		t.Fatalf("options ignored: %q %v", o.appName(), o.deliveryTimeout())
	}
}
