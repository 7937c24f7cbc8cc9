package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ataraskov/lsort/internal/compare"
	shellquote "github.com/kballard/go-shellquote"
)

var errEmptyCommand = errors.New("empty comparison command")

// ExecCallback runs an external program as the comparison callback. The
// two compared values are appended to its arguments and its standard
// output must be an integer.
type ExecCallback struct {
	ctx  context.Context
	argv []string
}

var _ compare.Callback = (*ExecCallback)(nil)

// NewExecCallback parses cmdline with shell word rules. ctx bounds every
// invocation.
func NewExecCallback(ctx context.Context, cmdline string) (*ExecCallback, error) {
	argv, err := shellquote.Split(cmdline)
	if err != nil {
		return nil, fmt.Errorf("invalid command %q: %w", cmdline, err)
	}
	if len(argv) == 0 {
		return nil, errEmptyCommand
	}

	return &ExecCallback{
		ctx:  ctx,
		argv: argv,
	}, nil
}

// Invoke implements compare.Callback
func (c *ExecCallback) Invoke(args [2]string) (string, error) {
	cmdArgs := append(c.argv[1:len(c.argv):len(c.argv)], args[0], args[1])
	cmd := exec.CommandContext(c.ctx, c.argv[0], cmdArgs...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", c.argv[0], err, msg)
		}
		return "", fmt.Errorf("%s: %w", c.argv[0], err)
	}
	return strings.TrimSpace(string(out)), nil
}
