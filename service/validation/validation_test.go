package validation

import (
	"context"
	"testing"

	"github.com/beldeveloper/repo-keeper/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComponentDefaults(t *testing.T) {
	v := NewValidation()
	f, err := v.AddComponent(context.Background(), model.FormAddComponent{
		ProjectSlug: " docs ",
		Slug:        "website",
		RepoURL:     "https://example.com/docs.git",
	})
	require.NoError(t, err)
	assert.Equal(t, "docs", f.ProjectSlug)
	assert.Equal(t, "main", f.Branch)
	assert.Equal(t, model.AutoUpdateRemote, f.AutoUpdate)
	assert.Equal(t, model.DefaultCommitPendingAge, f.CommitPendingAge)
}

func TestAddComponentRejects(t *testing.T) {
	v := NewValidation()
	cases := []struct {
		name string
		form model.FormAddComponent
	}{
		{name: "no project", form: model.FormAddComponent{Slug: "website", RepoURL: "u"}},
		{name: "no slug", form: model.FormAddComponent{ProjectSlug: "docs", RepoURL: "u"}},
		{name: "no url", form: model.FormAddComponent{ProjectSlug: "docs", Slug: "website"}},
		{name: "bad mode", form: model.FormAddComponent{ProjectSlug: "docs", Slug: "website", RepoURL: "u", AutoUpdate: "sometimes"}},
		{name: "negative age", form: model.FormAddComponent{ProjectSlug: "docs", Slug: "website", RepoURL: "u", CommitPendingAge: -1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := v.AddComponent(context.Background(), c.form)
			require.ErrorIs(t, err, model.ErrBadInput)
		})
	}
}

func TestSubmitTask(t *testing.T) {
	v := NewValidation()

	f, err := v.SubmitTask(context.Background(), model.FormSubmitTask{Kind: model.TaskKindCommit, ComponentID: 1})
	require.NoError(t, err)
	assert.Equal(t, model.TaskKindCommit, f.Kind)

	_, err = v.SubmitTask(context.Background(), model.FormSubmitTask{Kind: "mystery", ComponentID: 1})
	require.ErrorIs(t, err, model.ErrBadInput)

	_, err = v.SubmitTask(context.Background(), model.FormSubmitTask{Kind: model.TaskKindUpdate})
	require.ErrorIs(t, err, model.ErrBadInput, "component tasks need a component id")

	_, err = v.SubmitTask(context.Background(), model.FormSubmitTask{Kind: model.TaskKindProjectRemoval})
	require.ErrorIs(t, err, model.ErrBadInput, "project tasks need a project slug")

	f, err = v.SubmitTask(context.Background(), model.FormSubmitTask{
		Kind: model.TaskKindProjectRemoval,
		Args: model.TaskArgs{Project: " docs "},
	})
	require.NoError(t, err)
	assert.Equal(t, "docs", f.Args.Project)
}

func TestSubmitTaskGlobalScans(t *testing.T) {
	v := NewValidation()

	f, err := v.SubmitTask(context.Background(), model.FormSubmitTask{
		Kind: model.TaskKindCommitPending,
		Args: model.TaskArgs{Hours: 12},
	})
	require.NoError(t, err, "global scans take no component")
	assert.Equal(t, 12, f.Args.Hours)

	_, err = v.SubmitTask(context.Background(), model.FormSubmitTask{Kind: model.TaskKindRepositoryAlerts})
	require.NoError(t, err)

	_, err = v.SubmitTask(context.Background(), model.FormSubmitTask{
		Kind: model.TaskKindCommitPending,
		Args: model.TaskArgs{Hours: -1},
	})
	require.ErrorIs(t, err, model.ErrBadInput)

	_, err = v.SubmitTask(context.Background(), model.FormSubmitTask{
		Kind: model.TaskKindRepositoryAlerts,
		Args: model.TaskArgs{Threshold: -5},
	})
	require.ErrorIs(t, err, model.ErrBadInput)
}
