package os

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/beldeveloper/repo-keeper/model"
	"github.com/rs/zerolog/log"
)

// NewOS creates a new instance of the OS module.
func NewOS() Service {
	return OS{}
}

// OS implements a module that interacts with the operating system.
type OS struct {
}

// RunCmd executes the system command and returns the system output.
func (os OS) RunCmd(ctx context.Context, cmd model.Cmd) (string, error) {
	osCmd := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	osCmd.Dir = cmd.Dir
	osCmd.Env = cmd.Env
	if cmd.Log {
		log.Debug().
			Str("dir", cmd.Dir).
			Str("cmd", cmd.Name+" "+strings.Join(cmd.Args, " ")).
			Msg("exec OS command")
	}
	var out bytes.Buffer
	var stderr bytes.Buffer
	osCmd.Stdout = &out
	osCmd.Stderr = &stderr
	err := osCmd.Run()
	if err != nil {
		return "", fmt.Errorf("%w; output: %s", err, strings.TrimSpace(stderr.String()))
	}
	return out.String(), nil
}
