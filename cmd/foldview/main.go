// ABOUTME: CLI entry point for foldview, the FoldMap demonstration program.
// ABOUTME: Parses flags, loads config, and dispatches to dump-json, help, or the TUI.

package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/foldedit/foldedit/internal/config"
	foldlog "github.com/foldedit/foldedit/internal/log"
	"github.com/foldedit/foldedit/pkg/foldmap"
	"github.com/foldedit/foldedit/pkg/textbuf"
)

var (
	version = "dev"
)

func main() {
	args := parseFlags()

	if args.help {
		renderHelp()
		return
	}
	if args.version {
		fmt.Printf("foldview %s\n", version)
		return
	}

	if args.verbose {
		foldlog.SetLevel(foldlog.LevelDebug)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args cliArgs) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	cfgRoot := cwd
	if args.configDir != "" {
		cfgRoot = args.configDir
	}
	cfg, err := config.Load(cfgRoot)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	content, err := readSource(args.file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", args.file, err)
	}

	buf := textbuf.New(content)
	fm := foldmap.New(buf)

	if args.dumpJSON {
		return dumpSnapshotJSON(fm, os.Stdout)
	}

	m := newModel(fm, buf, cfg, args.file)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func readSource(path string) (string, error) {
	if path == "" {
		return sampleDocument(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// sampleDocument gives foldview something to show when invoked without a
// -file argument.
func sampleDocument() string {
	return "func main() {\n" +
		"\tfmt.Println(\"hello\")\n" +
		"\t// a block a user might want to fold\n" +
		"\tfor i := 0; i < 10; i++ {\n" +
		"\t\tfmt.Println(i)\n" +
		"\t}\n" +
		"}\n"
}

const helpMarkdown = `# foldview

An interactive viewer over a FoldMap-backed text buffer.

| Key       | Action                                |
|-----------|----------------------------------------|
| arrows/hjkl | move the cursor                      |
| z         | fold the current line's indentation block |
| Z         | unfold the fold under the cursor      |
| /         | fuzzy-search buffer rows              |
| i         | insert mode; Esc to leave             |
| ?         | toggle this help                      |
| q         | quit                                  |

Flags: ` + "`-file`, `-config`, `-dump-json`, `-help`" + `
`

func renderHelp() {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		fmt.Print(helpMarkdown)
		return
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		fmt.Print(helpMarkdown)
		return
	}
	fmt.Print(out)
}
