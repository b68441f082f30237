package playback

import (
	"errors"
	"fmt"
)

// UnsupportedRateError is returned by Update when the virtual clock runs at a rate other than stopped or
// normal speed. The media clock can't follow any other rate, so this is a programming error.
type UnsupportedRateError struct {
	Factor float64
}

func (e *UnsupportedRateError) Error() string {
	return fmt.Sprintf("unsupported playback rate %v: only 0 and 1 are supported", e.Factor)
}

// BusyError is returned when a command is issued while an earlier asynchronous media command is still in
// flight. Retry once the earlier command has settled.
type BusyError struct {
	Command string
	Pending string
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("player is busy: cannot %s while %s is pending", e.Command, e.Pending)
}

// UnavailableError is returned when the media clock can't answer yet, e.g. before the media has loaded.
// Poll again on a later tick.
type UnavailableError struct {
	What string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s is not available yet", e.What)
}

// IsBusy returns true if the error is a BusyError.
func IsBusy(err error) bool {
	var be *BusyError
	return errors.As(err, &be)
}

// IsUnsupportedRate returns true if the error is an UnsupportedRateError.
func IsUnsupportedRate(err error) bool {
	var ure *UnsupportedRateError
	return errors.As(err, &ure)
}

// IsUnavailable returns true if the error is an UnavailableError.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}
