package ngdp

import (
	"errors"
	"fmt"
)

// Error types.
var (
	// ErrNoDriver is the error returned when an action is run without a
	// driver.
	ErrNoDriver = errors.New("no driver")

	// ErrNotFound is the error returned by drivers when no node matches a
	// locator within the allotted time.
	ErrNotFound = errors.New("not found")

	// ErrCountMismatch is the error returned when the number of nodes
	// matching a locator differs from the expected count.
	ErrCountMismatch = errors.New("count mismatch")

	// ErrInvalidPosition is the error returned for a negative nth position.
	ErrInvalidPosition = errors.New("invalid position")
)

// CountError is returned by ExpectCount.
type CountError struct {
	Locator Locator
	Want    int
	Got     int
}

// Error satisfies the error interface.
func (err *CountError) Error() string {
	return fmt.Sprintf("%v: want %d nodes, got %d", err.Locator, err.Want, err.Got)
}

// Unwrap returns ErrCountMismatch.
func (err *CountError) Unwrap() error {
	return ErrCountMismatch
}
