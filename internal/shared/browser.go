package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

// swappable in tests
var getRuntime = func() string { return runtime.GOOS }

// OpenBrowser launches the system default browser at url. Backs the
// "open" behaviour and the credential setup links in the auth commands.
//
// The launcher process is started and left to run on its own; its exit
// status is not collected.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch goos := getRuntime(); goos {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		return fmt.Errorf("no known browser launcher for %s", goos)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
