package ngdp

import (
	"context"
	"fmt"
)

// SendKeys is an element action that types keys into the element, as key
// events, after waiting for it to be visible.
func SendKeys(q Query, keys string) Action {
	return elementAction(q, "send keys", func(ctx context.Context, d Driver, sel string, pos int) error {
		return d.SendKeys(ctx, sel, pos, keys)
	})
}

// Clear is an element action that empties the value of an input or textarea
// element.
func Clear(q Query) Action {
	return elementAction(q, "clear", func(ctx context.Context, d Driver, sel string, pos int) error {
		return d.Clear(ctx, sel, pos)
	})
}

// ClearAndSendKeys clears the element, then types keys into it.
func ClearAndSendKeys(q Query, keys string) Action {
	return Tasks{Clear(q), SendKeys(q, keys)}
}

// Click is an element action that clicks the element. Clicking an option
// element selects it in its parent select.
func Click(q Query) Action {
	return elementAction(q, "click", func(ctx context.Context, d Driver, sel string, pos int) error {
		return d.Click(ctx, sel, pos)
	})
}

// elementAction wraps a single element driver call, decorating errors with the
// query and the verb.
func elementAction(q Query, verb string, f func(context.Context, Driver, string, int) error) Action {
	return ActionFunc(func(ctx context.Context, d Driver) error {
		if err := validPosition(q); err != nil {
			return err
		}
		if err := f(ctx, d, q.locator().Selector(), q.position()); err != nil {
			return fmt.Errorf("%s %v: %w", verb, q, err)
		}
		return nil
	})
}
