//go:build wireinject
// +build wireinject

package main

import (
	"github.com/beldeveloper/repo-keeper/controller"
	"github.com/beldeveloper/repo-keeper/service"
	"github.com/beldeveloper/repo-keeper/service/alert"
	"github.com/beldeveloper/repo-keeper/service/audit"
	"github.com/beldeveloper/repo-keeper/service/cleanup"
	"github.com/beldeveloper/repo-keeper/service/component"
	"github.com/beldeveloper/repo-keeper/service/fulltext"
	"github.com/beldeveloper/repo-keeper/service/lock"
	"github.com/beldeveloper/repo-keeper/service/os"
	"github.com/beldeveloper/repo-keeper/service/parser"
	"github.com/beldeveloper/repo-keeper/service/reaper"
	"github.com/beldeveloper/repo-keeper/service/scheduler"
	"github.com/beldeveloper/repo-keeper/service/syncer"
	"github.com/beldeveloper/repo-keeper/service/task"
	"github.com/beldeveloper/repo-keeper/service/unit"
	"github.com/beldeveloper/repo-keeper/service/validation"
	"github.com/beldeveloper/repo-keeper/service/vcs"
	"github.com/google/wire"
)

// InitializeApp builds the service graph.
func InitializeApp() (App, error) {
	wire.Build(
		component.NewPostgres,
		unit.NewPostgres,
		task.NewPostgres,
		alert.NewPostgres,
		alert.NewEngine,
		audit.NewPostgres,
		cleanup.NewPostgres,
		fulltext.NewPostgres,
		fulltext.NewMaintainer,
		lock.NewKeyed,
		os.NewOS,
		parser.NewYaml,
		reaper.NewReaper,
		scheduler.NewCommitAge,
		syncer.NewSyncer,
		validation.NewValidation,
		vcs.NewGit,
		wire.Struct(new(service.Container), "*"),
		controller.NewController,
		newApp,
		appConfig,
		postgresConn,
		postgresSchema,
		reposDir,
	)
	return App{}, nil
}
