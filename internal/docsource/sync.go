package docsource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// DefaultSyncTimeout bounds how long a follower waits for another
// instance's sync.
const DefaultSyncTimeout = 5 * time.Minute

// SyncOptions configure a Syncer.
type SyncOptions struct {
	// URL of the git repository holding the documentation files
	URL string
	// Branch to mirror; empty selects the remote default branch
	Branch string
	// Timeout for waiting on another instance's sync
	Timeout time.Duration
}

// Syncer mirrors a git branch of documentation files into the data
// directory. Instances sharing a data directory coordinate through a lock
// file next to it so only one of them talks to the remote.
type Syncer struct {
	dataDir string
	opts    SyncOptions
	git     *GitClient
	lock    *FileLock
	state   string
}

// NewSyncer creates a syncer for dataDir.
func NewSyncer(dataDir string, opts SyncOptions, git *GitClient) *Syncer {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultSyncTimeout
	}
	if git == nil {
		git = NewGitClient(nil)
	}

	dataDir = filepath.Clean(dataDir)
	return &Syncer{
		dataDir: dataDir,
		opts:    opts,
		git:     git,
		lock:    NewFileLock(dataDir + ".sync.lock"),
		state:   dataDir + ".sync.json",
	}
}

// Sync brings the data directory up to date. When another instance holds
// the sync lock, Sync waits for it to finish and leaves the directory as
// that instance wrote it.
func (s *Syncer) Sync(ctx context.Context) error {
	acquired, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire sync lock: %w", err)
	}

	if !acquired {
		slog.Info("Another instance is syncing documentation, waiting for completion", "data_dir", s.dataDir)
		if err := s.lock.Lock(ctx, s.opts.Timeout); err != nil {
			return fmt.Errorf("waiting for documentation sync: %w", err)
		}
		if state, err := s.State(); err == nil {
			slog.Info("Documentation synced by another instance", "commit", state.Commit, "synced_at", state.SyncedAt)
		}
		return s.lock.Unlock()
	}

	defer func() {
		if err := s.lock.Unlock(); err != nil {
			slog.Error("Failed to release sync lock", "error", err)
		}
	}()

	commit, syncErr := s.syncRepo(ctx)
	s.recordState(commit, syncErr)
	return syncErr
}

// State returns the outcome of the last sync of the data directory.
func (s *Syncer) State() (*SyncState, error) {
	return LoadSyncState(s.state)
}

// recordState saves the sync outcome. A failed sync keeps the previously
// synced commit.
func (s *Syncer) recordState(commit string, syncErr error) {
	state, err := s.State()
	if err != nil {
		state = &SyncState{}
	}

	state.URL = RedactURL(s.opts.URL)
	state.Branch = s.opts.Branch
	state.Error = ""
	if syncErr != nil {
		state.Error = syncErr.Error()
	} else {
		state.Commit = commit
		state.SyncedAt = time.Now()
	}

	if err := state.Save(s.state); err != nil {
		slog.Warn("Failed to save sync state", "path", s.state, "error", err)
	}
}

func (s *Syncer) syncRepo(ctx context.Context) (string, error) {
	start := time.Now()

	cloned, err := s.isClone()
	if err != nil {
		return "", err
	}

	if cloned {
		slog.Info("Updating documentation", "data_dir", s.dataDir, "branch", s.opts.Branch)
		if err := s.git.Update(ctx, s.dataDir, s.opts.Branch); err != nil {
			return "", fmt.Errorf("update failed: %w", err)
		}
	} else {
		slog.Info("Cloning documentation", "branch", s.opts.Branch, "data_dir", s.dataDir)
		if err := s.git.Clone(ctx, s.opts.URL, s.opts.Branch, s.dataDir); err != nil {
			return "", fmt.Errorf("clone failed: %w", err)
		}
	}

	commit, err := s.git.HeadCommit(ctx, s.dataDir)
	if err != nil {
		return "", err
	}

	slog.Info("Documentation synced", "commit", commit, "duration", time.Since(start))
	return commit, nil
}

// isClone reports whether the data directory is the root of a git work
// tree. A data directory nested inside some other repository is not.
func (s *Syncer) isClone() (bool, error) {
	_, err := os.Stat(filepath.Join(s.dataDir, ".git"))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to inspect data directory: %w", err)
}
