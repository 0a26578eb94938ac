package ngdp

import (
	"context"
	"fmt"
	"time"
)

// DefaultSpinnerSettle is how long WaitSpinner waits for a loading indicator
// to show up before checking that it is gone.
const DefaultSpinnerSettle = 100 * time.Millisecond

// WaitNotVisible is an action that waits until no node matching l is visible.
// It succeeds immediately when nothing matches.
func WaitNotVisible(l Locator) Action {
	return ActionFunc(func(ctx context.Context, d Driver) error {
		if err := d.WaitNotVisible(ctx, l.Selector()); err != nil {
			return fmt.Errorf("wait not visible %v: %w", l, err)
		}
		return nil
	})
}

// WaitSpinner is an action that waits for an in-flight operation, signalled by
// the loading indicator l, to finish.
//
// Operations are often started by the action preceding the wait, and their
// indicator may be shown only after a short delay, so WaitSpinner first
// sleeps for settle. A settle of zero uses DefaultSpinnerSettle.
func WaitSpinner(l Locator, settle time.Duration) Action {
	if settle == 0 {
		settle = DefaultSpinnerSettle
	}
	return Tasks{Sleep(settle), WaitNotVisible(l)}
}
