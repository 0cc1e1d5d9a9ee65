// Package lifecycle holds shared constants for application startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds lifecycle operations such as the initial database
// ping and graceful HTTP shutdown.
const DefaultTimeout = 10 * time.Second
