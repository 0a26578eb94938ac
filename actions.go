package ngdp

import (
	"context"
	"time"
)

// Action is a single atomic action.
type Action interface {
	Do(context.Context, Driver) error
}

// ActionFunc is an adapter to allow the use of ordinary func's as an Action.
type ActionFunc func(context.Context, Driver) error

// Do executes the func f using the provided context and driver.
func (f ActionFunc) Do(ctx context.Context, d Driver) error {
	return f(ctx, d)
}

// Tasks is a sequential list of Actions that can be used as a single Action.
type Tasks []Action

// Do executes the list of Actions sequentially, using the provided context and
// driver. The first error stops the list.
func (t Tasks) Do(ctx context.Context, d Driver) error {
	if d == nil {
		return ErrNoDriver
	}
	for _, a := range t {
		if err := a.Do(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

// Sleep is an empty action that calls time.Sleep with the specified duration.
//
// Note: Sleep should be avoided, use the Wait* actions instead.
func Sleep(d time.Duration) Action {
	return ActionFunc(func(ctx context.Context, _ Driver) error {
		// Don't use time.After, to avoid a temporary goroutine leak if
		// ctx is cancelled before the timer fires.
		t := time.NewTimer(d)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		return nil
	})
}
