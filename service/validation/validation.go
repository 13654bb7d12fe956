package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/beldeveloper/repo-keeper/model"
)

var taskKinds = map[string]bool{
	model.TaskKindUpdate:           true,
	model.TaskKindLoad:             true,
	model.TaskKindCommit:           true,
	model.TaskKindPush:             true,
	model.TaskKindAfterSave:        true,
	model.TaskKindComponentRemoval: true,
	model.TaskKindProjectRemoval:   true,
	model.TaskKindCleanupProject:   true,
	model.TaskKindCommitPending:    true,
	model.TaskKindRepositoryAlerts: true,
}

// globalScanKinds marks the kinds that sweep every component and take no target.
var globalScanKinds = map[string]bool{
	model.TaskKindCommitPending:    true,
	model.TaskKindRepositoryAlerts: true,
}

var autoUpdateModes = map[string]bool{
	model.AutoUpdateFull:     true,
	model.AutoUpdateRemote:   true,
	model.AutoUpdateDisabled: true,
}

// NewValidation creates a new instance of the validation service.
func NewValidation() Service {
	return Validation{}
}

// Validation implements the validation service.
type Validation struct {
}

// AddComponent validates the input for the component registration request.
func (v Validation) AddComponent(ctx context.Context, f model.FormAddComponent) (model.FormAddComponent, error) {
	f.ProjectSlug = strings.TrimSpace(f.ProjectSlug)
	f.Slug = strings.TrimSpace(f.Slug)
	f.RepoURL = strings.TrimSpace(f.RepoURL)
	f.Branch = strings.TrimSpace(f.Branch)
	if f.ProjectSlug == "" {
		return f, fmt.Errorf("%w: project slug must not be empty", model.ErrBadInput)
	}
	if f.Slug == "" {
		return f, fmt.Errorf("%w: component slug must not be empty", model.ErrBadInput)
	}
	if f.RepoURL == "" {
		return f, fmt.Errorf("%w: repository URL must not be empty", model.ErrBadInput)
	}
	if f.Branch == "" {
		f.Branch = "main"
	}
	if f.AutoUpdate == "" {
		f.AutoUpdate = model.AutoUpdateRemote
	}
	if !autoUpdateModes[f.AutoUpdate] {
		return f, fmt.Errorf(
			"%w: auto-update mode is invalid; allowed values: %s, %s, %s",
			model.ErrBadInput, model.AutoUpdateFull, model.AutoUpdateRemote, model.AutoUpdateDisabled,
		)
	}
	if f.CommitPendingAge < 0 {
		return f, fmt.Errorf("%w: commit pending age must not be negative", model.ErrBadInput)
	}
	if f.CommitPendingAge == 0 {
		f.CommitPendingAge = model.DefaultCommitPendingAge
	}
	return f, nil
}

// SubmitTask validates the input for the task submission request.
func (v Validation) SubmitTask(ctx context.Context, f model.FormSubmitTask) (model.FormSubmitTask, error) {
	f.Kind = strings.TrimSpace(f.Kind)
	if !taskKinds[f.Kind] {
		return f, fmt.Errorf("%w: task kind %q is not supported", model.ErrBadInput, f.Kind)
	}
	if f.Kind == model.TaskKindProjectRemoval || f.Kind == model.TaskKindCleanupProject {
		f.Args.Project = strings.TrimSpace(f.Args.Project)
		if f.Args.Project == "" {
			return f, fmt.Errorf("%w: project slug is required for %s", model.ErrBadInput, f.Kind)
		}
	} else if f.ComponentID == 0 && !globalScanKinds[f.Kind] {
		return f, fmt.Errorf("%w: component id is required for %s", model.ErrBadInput, f.Kind)
	}
	if f.Args.Hours < 0 {
		return f, fmt.Errorf("%w: hours must not be negative", model.ErrBadInput)
	}
	if f.Args.Threshold < 0 {
		return f, fmt.Errorf("%w: threshold must not be negative", model.ErrBadInput)
	}
	return f, nil
}
