// File: affinity/errors.go
// Author: momentics <momentics@gmail.com>

package affinity

import (
	"fmt"

	"github.com/momentics/hioload-exec/api"
)

// ErrNotSupported is returned where thread pinning is unavailable.
var ErrNotSupported = fmt.Errorf("affinity: not supported on this platform: %w", api.ErrNotSupported)
