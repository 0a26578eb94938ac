package ngdp

import (
	"context"
	"fmt"
)

// Count is an action that retrieves the number of nodes currently matching
// l. It does not wait for nodes to appear.
func Count(l Locator, res *int) Action {
	if res == nil {
		panic("res cannot be nil")
	}
	return ActionFunc(func(ctx context.Context, d Driver) error {
		n, err := d.Count(ctx, l.Selector())
		if err != nil {
			return fmt.Errorf("count %v: %w", l, err)
		}
		*res = n
		return nil
	})
}

// ExpectCount is an action that fails with a *CountError when the number of
// nodes matching l is not want.
func ExpectCount(l Locator, want int) Action {
	return ActionFunc(func(ctx context.Context, d Driver) error {
		var got int
		if err := Count(l, &got).Do(ctx, d); err != nil {
			return err
		}
		if got != want {
			return &CountError{Locator: l, Want: want, Got: got}
		}
		return nil
	})
}

// Value is an element action that retrieves the value of an input, textarea
// or select element.
func Value(q Query, res *string) Action {
	if res == nil {
		panic("res cannot be nil")
	}
	return elementAction(q, "value", func(ctx context.Context, d Driver, sel string, pos int) error {
		v, err := d.Value(ctx, sel, pos)
		if err != nil {
			return err
		}
		*res = v
		return nil
	})
}

// WaitPresent is an element action that waits until the element exists and is
// visible.
func WaitPresent(q Query) Action {
	return elementAction(q, "wait present", func(ctx context.Context, d Driver, sel string, pos int) error {
		return d.WaitPresent(ctx, sel, pos)
	})
}
