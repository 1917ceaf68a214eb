package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	mdlayout "github.com/alnah/go-mdlayout"
	"github.com/alnah/go-mdlayout/internal/fileutil"
)

// Sentinel errors for input discovery.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrNoMarkdown       = errors.New("no markdown files found")
	ErrReadMarkdown     = errors.New("failed to read markdown file")
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
	ErrSummary          = errors.New("invalid SUMMARY.md")
)

// summaryFile orders and nests the chapters of a directory when present.
const summaryFile = "SUMMARY.md"

// summaryEntry matches "- [Name](path.md)" and "[Name](path.md)" lines.
var summaryEntry = regexp.MustCompile(`^(\s*)(?:[-*+]\s+)?\[([^\]]+)\]\(([^)]*)\)\s*$`)

// chapterSource is a chapter before its file is read.
type chapterSource struct {
	path  string
	name  string
	depth int
}

// discoverChapters resolves one input argument into ordered chapters.
// A file is one chapter. A directory uses its SUMMARY.md, or else every
// Markdown file below it in lexical order, nested by subdirectory.
func discoverChapters(input string) ([]mdlayout.Chapter, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	var sources []chapterSource
	switch {
	case !info.IsDir():
		if !fileutil.IsMarkdown(input) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidExtension, input)
		}
		sources = []chapterSource{{path: input}}
	case fileutil.FileExists(filepath.Join(input, summaryFile)):
		sources, err = readSummary(filepath.Join(input, summaryFile))
	default:
		sources, err = walkMarkdown(input)
	}
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMarkdown, input)
	}

	chapters := make([]mdlayout.Chapter, 0, len(sources))
	for _, src := range sources {
		data, err := os.ReadFile(src.path) // #nosec G304 -- path from user input
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		}
		chapters = append(chapters, mdlayout.Chapter{Name: src.name, Markdown: string(data), Depth: src.depth})
	}
	return chapters, nil
}

// walkMarkdown lists Markdown files below root. Hidden and underscore
// directories are skipped.
func walkMarkdown(root string) ([]chapterSource, error) {
	var sources []chapterSource
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), ".") || strings.HasPrefix(d.Name(), "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !fileutil.IsMarkdown(path) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		sources = append(sources, chapterSource{path: path, depth: strings.Count(rel, string(filepath.Separator))})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	return sources, nil
}

// readSummary parses an mdBook style summary. Link text names the chapter
// and list indentation nests it. Draft entries with an empty target are
// skipped; other lines are ignored.
func readSummary(path string) ([]chapterSource, error) {
	f, err := os.Open(path) // #nosec G304 -- path from user input
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	var (
		sources []chapterSource
		indents []int
	)
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		m := summaryEntry.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		indent := len(strings.ReplaceAll(m[1], "\t", "    "))
		for len(indents) > 0 && indents[len(indents)-1] >= indent {
			indents = indents[:len(indents)-1]
		}
		depth := len(indents)
		indents = append(indents, indent)

		target := strings.TrimSpace(m[3])
		if target == "" {
			continue
		}
		if !fileutil.IsMarkdown(target) {
			return nil, fmt.Errorf("%w: line %d: %s is not a markdown file", ErrSummary, line, target)
		}
		sources = append(sources, chapterSource{
			path:  filepath.Join(dir, filepath.FromSlash(target)),
			name:  strings.TrimSpace(m[2]),
			depth: depth,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	return sources, nil
}
