// Package process manages child processes started for external tools.
package process

import (
	"context"
	"os/exec"
	"time"
)

// WaitDelay bounds how long Wait blocks on output pipes after a kill.
const WaitDelay = 2 * time.Second

// Command builds an exec.Cmd bound to ctx. On cancellation the whole
// process group is killed, not only the direct child.
func Command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	NewGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			KillProcessGroup(cmd.Process.Pid)
		}
		return nil
	}
	cmd.WaitDelay = WaitDelay
	return cmd
}
