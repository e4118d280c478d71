//go:build linux

package probe

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// residentMemory reads the current RSS from /proc/self/statm.
// The second field is the resident page count.
func residentMemory() (int64, error) {
	data, err := os.ReadFile("/proc/self/statm")
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSamplingUnavailable, err)
	}

	fields := strings.Fields(string(data))
	if len(fields) < 2 {
		return 0, fmt.Errorf("%w: malformed statm", ErrSamplingUnavailable)
	}

	pages, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed statm: %w", ErrSamplingUnavailable, err)
	}

	return pages * int64(unix.Getpagesize()), nil
}
