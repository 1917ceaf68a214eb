package process

// Notes:
// - KillProcessGroup is only exercised with an invalid PID here; killing a
//   real group is covered by TestCommandCanceled on unix.
// - PID 0 is never used: syscall.Kill(-0, SIGKILL) targets our own group.

import (
	"context"
	"os/exec"
	"runtime"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestKillProcessGroup - Invalid PID Handling
// ---------------------------------------------------------------------------

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}

// ---------------------------------------------------------------------------
// TestCommand - Context-bound process groups
// ---------------------------------------------------------------------------

func TestCommandCanceled(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := Command(ctx, "sh", "-c", "sleep 30 & sleep 30").Run()
	if err == nil {
		t.Fatal("Run() expected error after cancellation")
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("Run() returned after %v, want prompt return", elapsed)
	}
}

func TestCommandRuns(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("uses echo binary")
	}
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skip("echo not available")
	}

	out, err := Command(context.Background(), "echo", "hi").Output()
	if err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if string(out) != "hi\n" {
		t.Errorf("Output() = %q, want %q", out, "hi\n")
	}
}
