package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultGracePeriod is how long an interrupted program gets to exit
// before it is killed.
const DefaultGracePeriod = 2 * time.Second

// command builds a cancellable command: on ctx cancel the process gets
// an interrupt, then a kill after grace.
func command(ctx context.Context, grace time.Duration, binary string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = grace
	return cmd
}

// run executes cmd and folds stderr into the returned error. When ctx
// was cancelled the context error is returned instead.
func run(ctx context.Context, cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%s: %w", cmd.Path, ErrNotInstalled)
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return fmt.Errorf("%s: %w: %s", cmd.Path, err, msg)
	}
	return fmt.Errorf("%s: %w", cmd.Path, err)
}

// Available reports whether binary can be found on PATH.
func Available(binary string) bool {
	_, err := exec.LookPath(binary)
	return err == nil
}
