// Package toolchain runs external lint, type-check and coverage commands as
// black boxes through the system shell.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/openkraft/rulegate/internal/domain"
)

const waitDelay = 2 * time.Second

// Runner implements domain.CommandRunner with sh -c.
type Runner struct {
	logger hclog.Logger
	// Stream, when set, receives the command output as it is produced.
	Stream io.Writer
}

func New(logger hclog.Logger) *Runner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Runner{logger: logger.Named("toolchain")}
}

// Run blocks until command exits. A non-zero exit is returned in the result;
// the error is reserved for commands that could not be started or were
// interrupted through ctx.
func (r *Runner) Run(ctx context.Context, dir, command string) (domain.CommandResult, error) {
	res := domain.CommandResult{Command: command}

	var buf bytes.Buffer
	var out io.Writer = &buf
	if r.Stream != nil {
		out = io.MultiWriter(&buf, r.Stream)
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out
	// Grandchildren may hold the output pipes open after sh is killed.
	cmd.WaitDelay = waitDelay

	r.logger.Debug("running command", "command", command, "dir", dir)
	err := cmd.Run()
	res.Output = buf.String()

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, fmt.Errorf("running %q: %w", command, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			r.logger.Debug("command exited non-zero", "command", command, "exit_code", res.ExitCode)
			return res, nil
		}
		return res, fmt.Errorf("running %q: %w", command, err)
	}
	r.logger.Debug("command succeeded", "command", command)
	return res, nil
}
