package cdpdriver

import (
	"os/exec"
)

// LookExecPath returns the path of the first browser executable found, and
// whether one was found.
func LookExecPath() (string, bool) {
	for _, name := range execNames {
		if found, err := exec.LookPath(name); err == nil {
			return found, true
		}
	}
	return "", false
}
