package ngdp

import (
	"context"
	"fmt"
)

// Navigate is an action that loads urlstr in the page.
func Navigate(urlstr string) Action {
	return ActionFunc(func(ctx context.Context, d Driver) error {
		if err := d.Navigate(ctx, urlstr); err != nil {
			return fmt.Errorf("navigate %s: %w", urlstr, err)
		}
		return nil
	})
}
