package ports

import (
	"context"
)

// GitInfo holds the repository context of a working directory.
type GitInfo struct {
	Root       string
	Branch     string
	Repository string
}

// GitDetector finds the git repository a directory belongs to.
type GitDetector interface {
	// Detect scans workingDir, or the current directory when empty.
	Detect(ctx context.Context, workingDir string) (*GitInfo, error)
}
