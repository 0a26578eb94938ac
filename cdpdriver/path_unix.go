//go:build linux || freebsd || netbsd || openbsd

package cdpdriver

// execNames are the browser executables to look for, in order.
var execNames = []string{
	"headless_shell",
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
	"google-chrome-beta",
	"google-chrome-unstable",
	"/usr/bin/google-chrome",
}
