//go:build !linux && !darwin

package probe

// residentMemory has no implementation on this platform. Measurements
// degrade to a zero memory delta.
func residentMemory() (int64, error) {
	return 0, ErrSamplingUnavailable
}
