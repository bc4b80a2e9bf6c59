package adapters

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pkg-provenance/internal/shared"
)

// CommandRunner executes name with args and returns stdout and stderr.
// env entries are appended to the current process environment.
type CommandRunner func(ctx context.Context, env []string, name string, args ...string) ([]byte, []byte, error)

// localeEnv pins apt and dpkg output to the untranslated format the
// parsers expect.
var localeEnv = []string{"LC_ALL=C"}

func execRunner(ctx context.Context, env []string, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// commandFailure classifies a failed tool invocation. ctx is the context
// the command ran under.
func commandFailure(ctx context.Context, tool string, stderr []byte, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return errbuilder.New().
			WithCode(errbuilder.CodeDeadlineExceeded).
			WithMsg(fmt.Sprintf("%s timed out", tool)).
			WithCause(ctx.Err())
	case errors.Is(ctx.Err(), context.Canceled):
		return errbuilder.New().
			WithCode(errbuilder.CodeCanceled).
			WithMsg(fmt.Sprintf("%s canceled", tool)).
			WithCause(ctx.Err())
	case errors.Is(err, exec.ErrNotFound):
		return errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg(fmt.Sprintf("%s not found", tool)).
			WithCause(err)
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeUnavailable).
			WithMsg(fmt.Sprintf("%s failed", tool)).
			WithCause(shared.CommandError(stderr, err))
	}
}
