package highlight

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-mdlayout/internal/markup"
	"github.com/alnah/go-mdlayout/internal/process"
	"github.com/alnah/go-mdlayout/internal/style"
)

// DefaultListTimeout bounds the one-off language listing call.
const DefaultListTimeout = 30 * time.Second

// Process highlights by running an external command, highlight.js
// conventions assumed:
//
//	command args... --list-languages       prints one language per line
//	command args... --language NAME        reads source on stdin, writes markup
//
// Class attributes are "hljs-" prefixed; nested scopes end with "_".
type Process struct {
	command string
	args    []string

	once      sync.Once
	languages map[string]bool
	listErr   error
}

var _ Highlighter = (*Process)(nil)

// NewProcess creates a Process highlighter. The language list is fetched
// on first use.
func NewProcess(command string, args ...string) *Process {
	return &Process{command: command, args: args}
}

// Name implements Highlighter.
func (p *Process) Name() string { return BackendProcess }

// SupportsLanguage implements Highlighter. A command that cannot list its
// languages supports none, which routes every block to plain text.
func (p *Process) SupportsLanguage(name string) bool {
	langs, err := p.Languages()
	if err != nil {
		return false
	}
	return langs[strings.ToLower(name)]
}

// Languages returns the set reported by --list-languages.
func (p *Process) Languages() (map[string]bool, error) {
	p.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultListTimeout)
		defer cancel()
		out, err := p.run(ctx, "", "--list-languages")
		if err != nil {
			p.listErr = err
			return
		}
		p.languages = parseLanguages(out)
	})
	return p.languages, p.listErr
}

// parseLanguages accepts names separated by newlines, commas or spaces.
func parseLanguages(out string) map[string]bool {
	langs := make(map[string]bool)
	for _, f := range strings.FieldsFunc(out, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r' || r == ' ' || r == '\t'
	}) {
		langs[strings.ToLower(f)] = true
	}
	return langs
}

// Highlight implements Highlighter.
func (p *Process) Highlight(ctx context.Context, language, source string) (string, error) {
	if !p.SupportsLanguage(language) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}
	return p.run(ctx, source, "--language", language)
}

func (p *Process) run(ctx context.Context, stdin string, extra ...string) (string, error) {
	if p.command == "" {
		return "", fmt.Errorf("%w: no command configured", ErrHighlightFailed)
	}
	args := append(append([]string{}, p.args...), extra...)
	cmd := process.Command(ctx, p.command, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("%w: %s: %v", ErrHighlightFailed, p.command, err)
		}
		return "", fmt.Errorf("%w: %s: %v: %s", ErrHighlightFailed, p.command, err, msg)
	}
	return stdout.String(), nil
}

// SplitClasses implements Highlighter.
func (p *Process) SplitClasses(attr string) []string {
	return markup.HLJS(attr)
}

// Theme implements Highlighter with the highlight.js default palette.
func (p *Process) Theme(base style.Style) *style.Parent {
	return style.FromPalette(base, style.DefaultPalette())
}
