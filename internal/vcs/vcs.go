// Package vcs materializes and refreshes repository working trees through an
// external version-control binary. Transport failures are fatal to the
// invoking command; nothing here retries.
package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var commandContext = exec.CommandContext

// TransportError wraps a failure of the underlying VCS transport.
type TransportError struct {
	Op     string
	Remote string
	Err    error
	Output string
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("vcs %s %s: %v", e.Op, e.Remote, e.Err)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

func (e *TransportError) Unwrap() error { return e.Err }

// Cloner materializes a remote repository into a local directory.
type Cloner interface {
	Clone(ctx context.Context, remoteURL, localPath string) error
	Pull(ctx context.Context, localPath string) error
}

// Option configures the git client.
type Option func(*GitCLI)

// WithBinary overrides the default git binary name.
func WithBinary(binary string) Option {
	return func(g *GitCLI) {
		if binary != "" {
			g.binary = binary
		}
	}
}

// GitCLI drives the git command-line client.
type GitCLI struct {
	binary string
}

// NewGitCLI constructs a git client using defaults.
func NewGitCLI(opts ...Option) *GitCLI {
	cli := &GitCLI{binary: "git"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Clone checks out remoteURL into localPath.
func (g *GitCLI) Clone(ctx context.Context, remoteURL, localPath string) error {
	if remoteURL == "" {
		return errors.New("remote url required")
	}
	if localPath == "" {
		return errors.New("local path required")
	}
	return g.run(ctx, "clone", remoteURL, "clone", remoteURL, localPath)
}

// Pull refreshes an existing checkout at localPath.
func (g *GitCLI) Pull(ctx context.Context, localPath string) error {
	if localPath == "" {
		return errors.New("local path required")
	}
	return g.run(ctx, "pull", localPath, "-C", localPath, "pull", "--ff-only")
}

func (g *GitCLI) run(ctx context.Context, op, remote string, args ...string) error {
	cmd := commandContext(ctx, g.binary, args...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		return &TransportError{
			Op:     op,
			Remote: remote,
			Err:    err,
			Output: strings.TrimSpace(output.String()),
		}
	}
	return nil
}

var _ Cloner = (*GitCLI)(nil)
