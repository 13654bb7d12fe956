package model

import "time"

const (
	// TaskKindUpdate defines the task that fetches and optionally merges the remote.
	TaskKindUpdate = "update"
	// TaskKindLoad defines the task that parses the translation files into units.
	TaskKindLoad = "load"
	// TaskKindCommit defines the task that commits the pending local changes.
	TaskKindCommit = "commit"
	// TaskKindPush defines the task that publishes the local commits to the remote.
	TaskKindPush = "push"
	// TaskKindAfterSave defines the task that re-syncs a component after its VCS settings changed.
	TaskKindAfterSave = "after-save"
	// TaskKindComponentRemoval defines the task that removes a component.
	TaskKindComponentRemoval = "component-removal"
	// TaskKindProjectRemoval defines the task that removes a whole project.
	TaskKindProjectRemoval = "project-removal"
	// TaskKindCleanupProject defines the task that removes stale source units of a project.
	TaskKindCleanupProject = "cleanup-project"
	// TaskKindCommitPending defines the task that scans for aged pending changes, with an optional uniform age.
	TaskKindCommitPending = "commit-pending"
	// TaskKindRepositoryAlerts defines the task that re-evaluates the commit-count alerts, with an optional threshold.
	TaskKindRepositoryAlerts = "repository-alerts"

	// TaskStatusQueued defines the status that means the task is awaiting a worker.
	TaskStatusQueued = "queued"
	// TaskStatusRunning defines the status that means the task is claimed by a worker.
	TaskStatusRunning = "running"
	// TaskStatusFailed defines the status that means the task terminated with a non-retriable error.
	TaskStatusFailed = "failed"
)

// TaskArgs carries the optional arguments of a task.
type TaskArgs struct {
	Reason    string `json:"reason,omitempty"`
	Author    string `json:"author,omitempty"`
	Actor     string `json:"actor,omitempty"`
	Project   string `json:"project,omitempty"`
	Auto      bool   `json:"auto,omitempty"`
	SkipPush  bool   `json:"skipPush,omitempty"`
	Hours     int    `json:"hours,omitempty"`
	Threshold int    `json:"threshold,omitempty"`
}

// Task is a model that represents a unit of background work.
type Task struct {
	ID          uint64    `json:"id"`
	Kind        string    `json:"kind"`
	ComponentID uint64    `json:"componentId"`
	Args        TaskArgs  `json:"args"`
	Status      string    `json:"status"`
	Attempts    int       `json:"attempts"`
	RunAfter    time.Time `json:"runAfter"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
