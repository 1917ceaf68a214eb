//go:build integration

package mdlayout

// Notes:
// - Requires Chrome or Chromium; set ROD_BROWSER_BIN to a custom binary and
//   ROD_NO_SANDBOX=1 in containers.
// - Extracted text is checked for words only: Chrome may split or merge text
//   objects differently between versions.

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ledongthuc/pdf"
)

func TestConvert_ChromeIntegration(t *testing.T) {
	conv, err := NewConverter(WithBackend(BackendChrome), WithTimeout(90*time.Second))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), Input{
		Subtitle: "Integration",
		Chapters: []Chapter{
			{Markdown: "# Field Guide\n\nSome **bold** words.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"},
			{Markdown: "# Code\n\n```go\nfunc main() {}\n```\n", Depth: 1},
		},
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !bytes.HasPrefix(result.Output, []byte("%PDF-")) {
		t.Fatalf("output does not start with a PDF header")
	}

	rd, err := pdf.NewReader(bytes.NewReader(result.Output), int64(len(result.Output)))
	if err != nil {
		t.Fatalf("pdf.NewReader() error = %v", err)
	}
	if rd.NumPage() < 2 {
		t.Errorf("NumPage() = %d, want a title page and content", rd.NumPage())
	}

	var text strings.Builder
	for i := 1; i <= rd.NumPage(); i++ {
		content, err := rd.Page(i).GetPlainText(nil)
		if err != nil {
			t.Fatalf("GetPlainText(page %d) error = %v", i, err)
		}
		text.WriteString(content)
	}
	for _, want := range []string{"Field", "Guide", "Integration", "bold", "main"} {
		if !strings.Contains(text.String(), want) {
			t.Errorf("extracted text missing %q", want)
		}
	}
}

func TestConvert_PDFIntegration_LargeBook(t *testing.T) {
	var chapters []Chapter
	for i := range 40 {
		chapters = append(chapters, Chapter{
			Markdown: "# Part\n\n" + strings.Repeat("A line of filler text that wraps. ", 200),
			Depth:    i % 2,
		})
	}

	conv, err := NewConverter(WithWorkers(4))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), Input{Title: "Large", Chapters: chapters})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	rd, err := pdf.NewReader(bytes.NewReader(result.Output), int64(len(result.Output)))
	if err != nil {
		t.Fatalf("pdf.NewReader() error = %v", err)
	}
	if rd.NumPage() < 40 {
		t.Errorf("NumPage() = %d, want one page or more per chapter", rd.NumPage())
	}
}

func TestConvert_ChromeIntegration_Concurrent(t *testing.T) {
	conv, err := NewConverter(WithBackend(BackendChrome), WithTimeout(90*time.Second))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	defer conv.Close()

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Go(func() {
			result, err := conv.Convert(context.Background(), Input{
				Chapters: []Chapter{{Markdown: "# Shared Browser\n\nOne of several renders."}},
			})
			if err == nil && !bytes.HasPrefix(result.Output, []byte("%PDF-")) {
				err = errors.New("output does not start with a PDF header")
			}
			errs[i] = err
		})
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("Convert() #%d error = %v", i, err)
		}
	}
}
