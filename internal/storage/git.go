package storage

import (
	"log/slog"
	"os/exec"
)

// CommitDataChanges stages the data directory and commits it when anything
// is staged. Best effort: any git failure is logged and ignored so a missing
// repo never affects the run.
func CommitDataChanges(dataDir string) {
	if err := exec.Command("git", "add", dataDir).Run(); err != nil {
		slog.Debug("git add failed", "error", err)
		return
	}
	// diff --cached --quiet exits non-zero when something is staged.
	if err := exec.Command("git", "diff", "--cached", "--quiet").Run(); err == nil {
		return
	}
	if err := exec.Command("git", "commit", "-m", "Update forecast data").Run(); err != nil {
		slog.Debug("git commit failed", "error", err)
	}
}
