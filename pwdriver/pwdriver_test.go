package pwdriver

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chromedp/ngdp"
	"github.com/chromedp/ngdp/internal/fakeapp"
)

// newDriver starts a driver, unless playwright tests are disabled.
func newDriver(t *testing.T) *Driver {
	t.Helper()
	if os.Getenv("NGDP_PLAYWRIGHT") != "1" {
		t.Skip("set NGDP_PLAYWRIGHT=1 to run playwright tests")
	}
	d, err := New(Install)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, d.Close())
	})
	return d
}

func TestDriver(t *testing.T) {
	d := newDriver(t)
	app := fakeapp.New()
	srv := httptest.NewServer(app.Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, d.Navigate(ctx, srv.URL+"/"))

	languages := ngdp.ByOptions("language.name for language in languages.availableLanguages track by language.id").Selector()
	n, err := d.Count(ctx, languages)
	require.NoError(t, err)
	assert.Equal(t, len(fakeapp.DefaultLanguages), n)

	// selecting an option
	require.NoError(t, d.Click(ctx, languages, 1))
	v, err := d.Value(ctx, ngdp.ByID("language").Selector(), 0)
	require.NoError(t, err)
	assert.Equal(t, fakeapp.DefaultLanguages[1].ID, v)

	username := ngdp.ByModel("credentials.username").Selector()
	require.NoError(t, d.SendKeys(ctx, username, 0, "bellini"))
	v, err = d.Value(ctx, username, 0)
	require.NoError(t, err)
	assert.Equal(t, "bellini", v)
	require.NoError(t, d.Clear(ctx, username, 0))
	v, err = d.Value(ctx, username, 0)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, d.WaitNotVisible(ctx, "#spinner"))

	buf, err := d.Screenshot(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, buf)
}

func TestWaitPresentNotFound(t *testing.T) {
	d := newDriver(t)
	app := fakeapp.New()
	srv := httptest.NewServer(app.Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, d.Navigate(ctx, srv.URL+"/"))

	wctx, wcancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer wcancel()
	err := d.WaitPresent(wctx, ".missing", 0)
	assert.True(t, errors.Is(err, ngdp.ErrNotFound), "got %v", err)
}
