package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"gvtools"
	"gvtools/internal/config"

	"github.com/mattn/go-shellwords"
)

// CommandDispatcher feeds the message to the [notify] command on stdin. With
// no command, or in dry-run mode, the message is written to Out instead.
type CommandDispatcher struct {
	Command string
	DryRun  bool
	Out     io.Writer
	ErrOut  io.Writer

	args []string
}

// NewCommandDispatcher splits command shell-style up front so a bad command
// line is reported before any log is read.
func NewCommandDispatcher(command string, dryRun bool, out, errOut io.Writer) (*CommandDispatcher, error) {
	d := &CommandDispatcher{Command: command, DryRun: dryRun, Out: out, ErrOut: errOut}
	if strings.TrimSpace(command) == "" {
		return d, nil
	}
	args, err := shellwords.Parse(command)
	if err != nil {
		return nil, &gvtools.ConfigError{Key: config.SectionNotify + "." + config.KeyCommand, Value: command, Err: err}
	}
	d.args = args
	return d, nil
}

func (d *CommandDispatcher) Dispatch(ctx context.Context, message string) error {
	if d.DryRun || len(d.args) == 0 {
		_, err := io.WriteString(d.Out, message)
		return err
	}

	cmd := exec.CommandContext(ctx, d.args[0], d.args[1:]...)
	cmd.Stdin = strings.NewReader(message)
	cmd.Stdout = d.Out
	cmd.Stderr = d.ErrOut
	if err := cmd.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return &gvtools.CommandError{Command: d.Command, ExitCode: ee.ExitCode()}
		}
		return fmt.Errorf("run notification command: %w", err)
	}
	return nil
}
