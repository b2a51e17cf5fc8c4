package gitsource

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

func (h *FileHistory) revisionsGitCLI(ctx context.Context, path string) ([]string, error) {
	args := []string{"-C", h.opts.RepoPath, "log", "--format=%H", "--", path}

	out, err := exec.CommandContext(ctx, "git", args...).Output()
	if err != nil {
		return nil, fmt.Errorf("%w: git log %s: %v", ErrHistoryUnavailable, path, cliError(err))
	}

	var revs []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			revs = append(revs, line)
		}
	}
	return revs, nil
}

func (h *FileHistory) showGitCLI(ctx context.Context, rev, path string) ([]byte, error) {
	args := []string{"-C", h.opts.RepoPath, "show", rev + ":" + path}

	out, err := exec.CommandContext(ctx, "git", args...).Output()
	if err != nil {
		return nil, fmt.Errorf("%w: git show %s:%s: %v", ErrRevisionRead, rev, path, cliError(err))
	}
	return out, nil
}

// cliError folds the git binary's stderr into the error message.
func cliError(err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
	}
	return err
}
