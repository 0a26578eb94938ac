//go:build darwin

package cdpdriver

// execNames are the browser executables to look for, in order.
var execNames = []string{
	"headless_shell",
	"chromium",
	`/Applications/Google Chrome.app/Contents/MacOS/Google Chrome`,
	`/Applications/Chromium.app/Contents/MacOS/Chromium`,
}
