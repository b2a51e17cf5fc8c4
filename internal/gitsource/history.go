package gitsource

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrHistoryUnavailable means the revision list itself could not be
// obtained (not a repository, no HEAD, file never tracked). There is
// no partial result behind it; the whole run aborts.
var ErrHistoryUnavailable = errors.New("revision history unavailable")

// ErrRevisionRead means one revision's content could not be read.
// Callers skip that revision and keep going.
var ErrRevisionRead = errors.New("revision content unreadable")

// Options configures a FileHistory.
type Options struct {
	RepoPath string
	// UseGitCLI shells out to the git binary instead of reading the
	// repository with go-git.
	UseGitCLI bool
}

// FileHistory reads the revision history of a single tracked file:
// the identifiers of commits that touched it, and its content at any
// of those revisions.
type FileHistory struct {
	repo *git.Repository
	opts Options
}

// NewFileHistory opens the repository at opts.RepoPath. With UseGitCLI
// the open is deferred to the git binary, so failures surface on the
// first query instead.
func NewFileHistory(opts Options) (*FileHistory, error) {
	if opts.UseGitCLI {
		return &FileHistory{opts: opts}, nil
	}

	repo, err := git.PlainOpen(opts.RepoPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrHistoryUnavailable, opts.RepoPath, err)
	}
	return &FileHistory{repo: repo, opts: opts}, nil
}

// Revisions returns the identifiers of commits that touched path,
// newest first. Callers must not rely on the order; snapshots are
// re-sorted by their embedded timestamps downstream.
func (h *FileHistory) Revisions(ctx context.Context, path string) ([]string, error) {
	if h.opts.UseGitCLI {
		return h.revisionsGitCLI(ctx, path)
	}

	ref, err := h.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("%w: resolve HEAD: %v", ErrHistoryUnavailable, err)
	}

	cIter, err := h.repo.Log(&git.LogOptions{From: ref.Hash(), FileName: &path})
	if err != nil {
		return nil, fmt.Errorf("%w: log %s: %v", ErrHistoryUnavailable, path, err)
	}

	var revs []string
	err = cIter.ForEach(func(c *object.Commit) error {
		revs = append(revs, c.Hash.String())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walk history of %s: %v", ErrHistoryUnavailable, path, err)
	}

	return revs, nil
}

// Show returns the file's content as it existed at the given revision.
func (h *FileHistory) Show(ctx context.Context, rev, path string) ([]byte, error) {
	if h.opts.UseGitCLI {
		return h.showGitCLI(ctx, rev, path)
	}

	commit, err := h.repo.CommitObject(plumbing.NewHash(rev))
	if err != nil {
		return nil, fmt.Errorf("%w: commit %s: %v", ErrRevisionRead, rev, err)
	}

	f, err := commit.File(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s at %s: %v", ErrRevisionRead, path, rev, err)
	}

	content, err := f.Contents()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s at %s: %v", ErrRevisionRead, path, rev, err)
	}

	return []byte(content), nil
}
