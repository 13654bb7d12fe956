package model

import "time"

const (
	// AutoUpdateFull defines the mode that fetches and merges the remote on every scheduled update.
	AutoUpdateFull = "full"
	// AutoUpdateRemote defines the mode that only fetches the remote branch on scheduled updates.
	AutoUpdateRemote = "remote"
	// AutoUpdateDisabled defines the mode that skips scheduled updates entirely.
	AutoUpdateDisabled = "disabled"

	// DefaultCommitPendingAge defines the default age of pending changes, in hours, before auto-commit.
	DefaultCommitPendingAge = 24
)

// Component is a model that represents a managed translation repository.
type Component struct {
	ID               uint64     `json:"id"`
	ProjectSlug      string     `json:"projectSlug"`
	Slug             string     `json:"slug"`
	RepoURL          string     `json:"repoUrl"`
	Branch           string     `json:"branch"`
	AutoUpdate       string     `json:"autoUpdate"`
	CommitPendingAge int        `json:"commitPendingAge"`
	PushOnCommit     bool       `json:"pushOnCommit"`
	HasRemote        bool       `json:"hasRemote"`
	NeedsCommit      bool       `json:"needsCommit"`
	LastChangedAt    *time.Time `json:"lastChangedAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Path returns the checkout location of the component relative to the repositories directory.
func (c Component) Path() string {
	return c.ProjectSlug + "/" + c.Slug
}
