//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// KillProcessGroup sends SIGKILL to the process group led by pid.
func KillProcessGroup(pid int) {
	// Best-effort; the caller's own Wait reports the outcome.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}

// NewGroup makes cmd the leader of a new process group so that
// KillProcessGroup also reaches its children.
func NewGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}
