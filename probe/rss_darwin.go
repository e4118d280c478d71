//go:build darwin

package probe

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// residentMemory reports the peak RSS from getrusage. Darwin exposes no
// cheap current-RSS counter without task_info, so peak is the documented
// best effort here; deltas still capture growth during the measured call.
func residentMemory() (int64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSamplingUnavailable, err)
	}
	// ru_maxrss is in bytes on darwin.
	return ru.Maxrss, nil
}
