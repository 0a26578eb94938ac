//go:build !(linux || freebsd || netbsd || openbsd || darwin || windows)

package cdpdriver

var execNames = []string{"chromium", "google-chrome"}
