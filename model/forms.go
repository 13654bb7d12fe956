package model

// FormAddComponent is a new component registration form.
type FormAddComponent struct {
	ProjectSlug      string `json:"projectSlug"`
	Slug             string `json:"slug"`
	RepoURL          string `json:"repoUrl"`
	Branch           string `json:"branch"`
	AutoUpdate       string `json:"autoUpdate"`
	CommitPendingAge int    `json:"commitPendingAge"`
	PushOnCommit     bool   `json:"pushOnCommit"`
	HasRemote        bool   `json:"hasRemote"`
}

// FormSubmitTask is a task submission form.
type FormSubmitTask struct {
	Kind        string   `json:"kind"`
	ComponentID uint64   `json:"componentId"`
	Args        TaskArgs `json:"args"`
}
