package vcs

import (
	"context"
	"strconv"
	"strings"

	"github.com/beldeveloper/go-errors-context"
	"github.com/beldeveloper/repo-keeper/model"
	appOs "github.com/beldeveloper/repo-keeper/service/os"
)

// NewGit creates a new instance of the Git VCS driver.
func NewGit(reposDir model.FilePath, os appOs.Service) Service {
	return Git{reposDir: string(reposDir), os: os}
}

// Git implements the VCS driver for Git.
type Git struct {
	reposDir string
	os       appOs.Service
}

// Update clones the repository if the checkout is missing, otherwise fetches the remote branch.
func (g Git) Update(ctx context.Context, c model.Component) error {
	dir := g.dir(c)
	exists, err := g.os.Exists(dir)
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.vcs.git.Update: stat",
			Params: errors.Params{"component": c.ID},
		})
	}
	if !exists {
		_, err = g.os.RunCmd(ctx, model.Cmd{
			Name: "git",
			Args: []string{"clone", "--branch", c.Branch, c.RepoURL, c.Path()},
			Dir:  g.reposDir,
			Log:  true,
		})
		return errors.WrapContext(err, errors.Context{
			Path:   "service.vcs.git.Update: clone",
			Params: errors.Params{"component": c.ID},
		})
	}
	_, err = g.os.RunCmd(ctx, model.Cmd{
		Name: "git",
		Args: []string{"fetch", "origin", c.Branch},
		Dir:  dir,
		Log:  true,
	})
	return errors.WrapContext(err, errors.Context{
		Path:   "service.vcs.git.Update: fetch",
		Params: errors.Params{"component": c.ID},
	})
}

// Merge merges the fetched remote branch into the local checkout.
func (g Git) Merge(ctx context.Context, c model.Component) error {
	_, err := g.os.RunCmd(ctx, model.Cmd{
		Name: "git",
		Args: []string{"merge", "origin/" + c.Branch},
		Dir:  g.dir(c),
		Log:  true,
	})
	return errors.WrapContext(err, errors.Context{
		Path:   "service.vcs.git.Merge",
		Params: errors.Params{"component": c.ID, "branch": c.Branch},
	})
}

// NeedsCommit reports whether the checkout carries uncommitted local changes.
func (g Git) NeedsCommit(ctx context.Context, c model.Component) (bool, error) {
	out, err := g.os.RunCmd(ctx, model.Cmd{
		Name: "git",
		Args: []string{"status", "--porcelain"},
		Dir:  g.dir(c),
	})
	if err != nil {
		return false, errors.WrapContext(err, errors.Context{
			Path:   "service.vcs.git.NeedsCommit",
			Params: errors.Params{"component": c.ID},
		})
	}
	return strings.TrimSpace(out) != "", nil
}

// Commit flushes the pending local changes into one commit.
func (g Git) Commit(ctx context.Context, c model.Component, message, author string) error {
	dir := g.dir(c)
	_, err := g.os.RunCmd(ctx, model.Cmd{
		Name: "git",
		Args: []string{"add", "-A"},
		Dir:  dir,
	})
	if err != nil {
		return errors.WrapContext(err, errors.Context{
			Path:   "service.vcs.git.Commit: add",
			Params: errors.Params{"component": c.ID},
		})
	}
	args := []string{"commit", "-m", message}
	if author != "" {
		args = append(args, "--author", author)
	}
	_, err = g.os.RunCmd(ctx, model.Cmd{
		Name: "git",
		Args: args,
		Dir:  dir,
		Log:  true,
	})
	return errors.WrapContext(err, errors.Context{
		Path:   "service.vcs.git.Commit: commit",
		Params: errors.Params{"component": c.ID},
	})
}

// Push publishes the local commits to the remote.
func (g Git) Push(ctx context.Context, c model.Component) error {
	_, err := g.os.RunCmd(ctx, model.Cmd{
		Name: "git",
		Args: []string{"push", "origin", c.Branch},
		Dir:  g.dir(c),
		Log:  true,
	})
	return errors.WrapContext(err, errors.Context{
		Path:   "service.vcs.git.Push",
		Params: errors.Params{"component": c.ID, "branch": c.Branch},
	})
}

// CountMissing counts the remote commits that are not merged locally.
func (g Git) CountMissing(ctx context.Context, c model.Component) (int, error) {
	return g.revCount(ctx, c, "HEAD..origin/"+c.Branch, "service.vcs.git.CountMissing")
}

// CountOutgoing counts the local commits that are not pushed to the remote.
func (g Git) CountOutgoing(ctx context.Context, c model.Component) (int, error) {
	return g.revCount(ctx, c, "origin/"+c.Branch+"..HEAD", "service.vcs.git.CountOutgoing")
}

func (g Git) revCount(ctx context.Context, c model.Component, rng, path string) (int, error) {
	out, err := g.os.RunCmd(ctx, model.Cmd{
		Name: "git",
		Args: []string{"rev-list", "--count", rng},
		Dir:  g.dir(c),
	})
	if err != nil {
		return 0, errors.WrapContext(err, errors.Context{
			Path:   path,
			Params: errors.Params{"component": c.ID, "range": rng},
		})
	}
	n, err := strconv.Atoi(strings.TrimSpace(out))
	return n, errors.WrapContext(err, errors.Context{
		Path:   path + ": parse",
		Params: errors.Params{"component": c.ID, "out": out},
	})
}

func (g Git) dir(c model.Component) string {
	return g.reposDir + "/" + c.Path()
}
