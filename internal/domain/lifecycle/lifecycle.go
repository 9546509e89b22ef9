// Package lifecycle holds shared constants for process start/stop coordination.
package lifecycle

import "time"

// DefaultTimeout bounds startup pings and graceful shutdown of managed resources.
const DefaultTimeout = 10 * time.Second
