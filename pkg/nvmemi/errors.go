package nvmemi

import (
	"errors"
	"fmt"
)

// ErrResponseTooShort is returned when a response does not carry the minimum
// number of bytes its command requires. Distinct from StatusError: a short
// response is a transmission or framing problem, a bad status is the remote
// reporting failure.
var ErrResponseTooShort = errors.New("nvmemi: response too short")

// StatusError reports a non-success NVMe-MI response status from the remote.
type StatusError struct {
	Status uint8
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("nvmemi: command failed with status 0x%02X", e.Status)
}
