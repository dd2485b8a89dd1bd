package docsource

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandExecutor abstracts command execution for testing.
type CommandExecutor interface {
	// Run executes a command and returns its standard output.
	Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
}

// ExecExecutor executes commands using os/exec.
type ExecExecutor struct{}

// Run implements CommandExecutor.
func (e *ExecExecutor) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}

	return stdout.Bytes(), nil
}

// GitClient runs the git commands needed to mirror a documentation branch.
type GitClient struct {
	executor CommandExecutor
}

// NewGitClient creates a GitClient. A nil executor selects ExecExecutor.
func NewGitClient(executor CommandExecutor) *GitClient {
	if executor == nil {
		executor = &ExecExecutor{}
	}
	return &GitClient{executor: executor}
}

// Clone shallow-clones a single branch of url into destDir. An empty
// branch clones the remote default branch.
func (g *GitClient) Clone(ctx context.Context, url, branch, destDir string) error {
	args := []string{"clone", "--depth", "1", "--single-branch"}
	if branch != "" {
		args = append(args, "--branch", branch)
	}
	args = append(args, url, destDir)

	if _, err := g.executor.Run(ctx, "", "git", args...); err != nil {
		return fmt.Errorf("git clone failed: %w", err)
	}
	return nil
}

// Update fetches the latest commit and hard-resets the working tree to it.
func (g *GitClient) Update(ctx context.Context, repoDir, branch string) error {
	ref := "HEAD"
	if branch != "" {
		ref = branch
	}

	if _, err := g.executor.Run(ctx, repoDir, "git", "fetch", "--depth", "1", "origin", ref); err != nil {
		return fmt.Errorf("git fetch failed: %w", err)
	}
	if _, err := g.executor.Run(ctx, repoDir, "git", "reset", "--hard", "FETCH_HEAD"); err != nil {
		return fmt.Errorf("git reset failed: %w", err)
	}
	return nil
}

// HeadCommit returns the commit SHA checked out in repoDir.
func (g *GitClient) HeadCommit(ctx context.Context, repoDir string) (string, error) {
	output, err := g.executor.Run(ctx, repoDir, "git", "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}
