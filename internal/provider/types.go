package provider

import "time"

// SizeUnknown marks a changed file whose size could not be determined.
const SizeUnknown = -1

// PullRequest represents an open pull request/merge request.
type PullRequest struct {
	Number      int // PR number (GitHub) or MR IID (GitLab)
	Title       string
	Description string
	Author      string
	Branch      string // source branch
	URL         string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ChangedFile represents a file changed in a pull request.
type ChangedFile struct {
	Path      string
	Status    string // added, modified, deleted, renamed
	Size      int64  // bytes at the PR head; SizeUnknown if undetermined
	Additions int
	Deletions int
	Binary    bool
	Diff      string // unified diff text, empty for binary files
}
