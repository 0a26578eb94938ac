package pwdriver

// Option is a driver option.
type Option func(*Driver)

// ExecPath is a driver option to launch a specific Chromium executable
// instead of the one installed by playwright.
func ExecPath(path string) Option {
	return func(d *Driver) {
		d.execPath = path
	}
}

// Headless is a driver option to run the browser with or without a window.
func Headless(headless bool) Option {
	return func(d *Driver) {
		d.headless = headless
	}
}

// WindowSize is a driver option to set the page viewport.
func WindowSize(width, height int) Option {
	return func(d *Driver) {
		d.width, d.height = width, height
	}
}

// Install is a driver option to download the playwright driver and Chromium
// before starting, when they are missing.
func Install(d *Driver) {
	d.install = true
}
