package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	flag "github.com/spf13/pflag"

	mdlayout "github.com/alnah/go-mdlayout"
	"github.com/alnah/go-mdlayout/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error classification
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"unexpected", errors.New("boom"), ExitGeneral},
		{"canceled", context.Canceled, ExitGeneral},
		{"help", flag.ErrHelp, ExitUsage},
		{"usage", fmt.Errorf("%w: bad flag", errUsage), ExitUsage},
		{"config parse", fmt.Errorf("loading: %w", config.ErrConfigParse), ExitUsage},
		{"page size", mdlayout.ErrInvalidPageSize, ExitUsage},
		{"config value", fmt.Errorf("%w: workers 99", config.ErrInvalidValue), ExitUsage},
		{"summary", ErrSummary, ExitUsage},
		{"not exist", fmt.Errorf("open: %w", os.ErrNotExist), ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"write", fmt.Errorf("%w: disk full", ErrWriteOutput), ExitIO},
		{"browser", fmt.Errorf("%w: %w", mdlayout.ErrRender, mdlayout.ErrBrowserConnect), ExitBackend},
		{"highlighter", mdlayout.ErrHighlighter, ExitBackend},
		{"hinted", withHint(ErrNoMarkdown, "look elsewhere"), ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
