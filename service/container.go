package service

import (
	"github.com/beldeveloper/repo-keeper/service/alert"
	"github.com/beldeveloper/repo-keeper/service/audit"
	"github.com/beldeveloper/repo-keeper/service/cleanup"
	"github.com/beldeveloper/repo-keeper/service/component"
	"github.com/beldeveloper/repo-keeper/service/fulltext"
	"github.com/beldeveloper/repo-keeper/service/reaper"
	"github.com/beldeveloper/repo-keeper/service/scheduler"
	"github.com/beldeveloper/repo-keeper/service/syncer"
	"github.com/beldeveloper/repo-keeper/service/task"
	"github.com/beldeveloper/repo-keeper/service/unit"
	"github.com/beldeveloper/repo-keeper/service/validation"
)

// Container keeps all services in one place.
type Container struct {
	Component  component.Service
	Unit       unit.Service
	Task       task.Service
	Syncer     syncer.Service
	Alert      alert.Service
	Engine     alert.Engine
	Maintainer fulltext.Maintainer
	Cleanup    cleanup.Service
	Reaper     reaper.Service
	Audit      audit.Service
	CommitAge  scheduler.CommitAge
	Validation validation.Service
}
