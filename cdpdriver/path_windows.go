//go:build windows

package cdpdriver

// execNames are the browser executables to look for, in order.
var execNames = []string{
	"chrome",
	"chrome.exe", // in case PATHEXT is misconfigured
	`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
	`C:\Program Files\Google\Chrome\Application\chrome.exe`,
	`C:\Program Files (x86)\Microsoft\Edge\Application\msedge.exe`,
}
