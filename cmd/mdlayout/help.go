package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-mdlayout/internal/assets"
	"github.com/alnah/go-mdlayout/internal/highlight"
	"github.com/alnah/go-mdlayout/internal/style"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdlayout [command] [flags] <input>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Lay out markdown books (default)")
	fmt.Fprintln(w, "  themes     List highlight themes, or show one")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdlayout help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdlayout convert <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Lay out markdown chapters as one book with a title page and contents.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file, or directory (ordered by SUMMARY.md when present)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file, directory with --split, or - for stdout")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -b, --backend <s>         Backend: pdf, chrome, text")
	fmt.Fprintln(w, "      --split               Convert each input to its own book")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Conversion timeout, e.g. 30s or 2m")
	fmt.Fprintln(w, "      --assets <dir>        Directory overriding themes, templates and scripts")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>           Book title (\"\" = first heading)")
	fmt.Fprintln(w, "      --subtitle <s>        Title page subtitle")
	fmt.Fprintln(w, "                            {date}, {date:FORMAT} and {date:preset} expand")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets: iso, european, us, long")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: a4, letter, legal")
	fmt.Fprintln(w, "      --landscape           Landscape orientation")
	fmt.Fprintln(w, "      --margin-x <mm>       Left and right margin")
	fmt.Fprintln(w, "      --margin-y <mm>       Top and bottom margin")
	fmt.Fprintln(w, "      --columns <n>         Text backend width in cells")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Highlighting:")
	fmt.Fprintln(w, "      --highlighter <s>     Highlighter: chroma, process")
	fmt.Fprintln(w, "      --style <s>           Chroma style name")
	fmt.Fprintln(w, "      --highlight-cmd <s>   External highlighter command")
	fmt.Fprintln(w, "      --theme <s>           Highlight theme (process highlighter)")
	fmt.Fprintln(w, "      --no-highlight        Render code without colours")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log conversion steps")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDLAYOUT_CONFIG, MDLAYOUT_BACKEND, MDLAYOUT_PAGE_SIZE, MDLAYOUT_THEME,")
	fmt.Fprintln(w, "  MDLAYOUT_ASSETS, MDLAYOUT_TIMEOUT, MDLAYOUT_WORKERS")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "themes":
		fmt.Fprintln(env.Stdout, "Usage: mdlayout themes [name]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List highlight themes and chroma styles, or show the class tree of one theme.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdlayout version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdlayout help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}

// runThemes lists the names accepted by --theme and --style, or prints
// the resolved style tree of one theme.
func runThemes(args []string, env *Environment) error {
	if len(args) == 0 {
		printThemes(env.Stdout)
		return nil
	}

	loader, err := assets.NewAssetResolver(env.Getenv("MDLAYOUT_ASSETS"))
	if err != nil {
		return err
	}
	th, err := loader.LoadTheme(args[0])
	if err != nil {
		return err
	}
	tree, err := style.FromHexPalette(style.New(), th.Colors)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "%s: %s\n", th.Name, th.Description)
	tree.Dump(env.Stdout)
	return nil
}

// printThemes lists the built-in themes and chroma styles.
func printThemes(w io.Writer) {
	fmt.Fprintln(w, "Themes (--theme):")
	for _, name := range assets.ThemeNames() {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Chroma styles (--style):")
	fmt.Fprintf(w, "  %s\n", strings.Join(highlight.ChromaStyles(), ", "))
}
