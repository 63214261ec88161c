// Package git finds the repository the user is working in so the sidebar
// can offer it as a project.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/xvierd/discipline-tracker/internal/ports"
)

// Detector implements ports.GitDetector using go-git.
type Detector struct{}

// NewDetector creates a new git detector.
func NewDetector() *Detector {
	return &Detector{}
}

var _ ports.GitDetector = (*Detector)(nil)

// Detect opens the repository containing workingDir, searching parent
// directories.
func (d *Detector) Detect(ctx context.Context, workingDir string) (*ports.GitInfo, error) {
	if workingDir == "" {
		var err error
		workingDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	repo, err := git.PlainOpenWithOptions(workingDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("git repository not found: %w", err)
	}

	info := &ports.GitInfo{}
	if wt, err := repo.Worktree(); err == nil {
		info.Root = wt.Filesystem.Root()
	}

	head, err := repo.Head()
	switch {
	case err == nil:
		info.Branch = head.Name().Short()
		if info.Branch == "HEAD" {
			info.Branch = "HEAD detached"
		}
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		// fresh repository without commits
	default:
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	if remotes, err := repo.Remotes(); err == nil && len(remotes) > 0 {
		if urls := remotes[0].Config().URLs; len(urls) > 0 {
			info.Repository = extractRepoName(urls[0])
		}
	}

	return info, nil
}

// ProjectName returns the label used for a detected repository: the
// remote's owner/name when known, otherwise the checkout directory name.
func ProjectName(info *ports.GitInfo) string {
	if info == nil {
		return ""
	}
	if info.Repository != "" {
		return info.Repository
	}
	if info.Root != "" {
		return filepath.Base(info.Root)
	}
	return ""
}

// extractRepoName turns a remote URL into owner/name.
func extractRepoName(url string) string {
	url = strings.TrimSuffix(strings.TrimSpace(url), "/")
	url = strings.TrimSuffix(url, ".git")

	// git@github.com:user/repo
	if strings.HasPrefix(url, "git@") {
		if _, path, ok := strings.Cut(url, ":"); ok {
			return path
		}
	}

	if i := strings.Index(url, "://"); i >= 0 {
		parts := strings.Split(url[i+3:], "/")
		if len(parts) >= 3 {
			return parts[len(parts)-2] + "/" + parts[len(parts)-1]
		}
		return parts[len(parts)-1]
	}

	return url
}
