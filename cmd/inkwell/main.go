// Package main is a line-oriented shell for exercising an inkwell
// buffer by hand: apply edits, undo, redo, inspect history.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/calebmills/inkwell/internal/config"
	"github.com/calebmills/inkwell/internal/engine/buffer"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var configPath string
	var initialText string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "Path to TOML settings file")
	flag.StringVar(&configPath, "c", "", "Path to TOML settings file (shorthand)")
	flag.StringVar(&initialText, "text", "", "Initial buffer content")
	flag.StringVar(&initialText, "t", "", "Initial buffer content (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Inkwell - transactional text buffer shell\n\n")
		fmt.Fprintf(os.Stderr, "Usage: inkwell [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands: type 'help' at the prompt.\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("Inkwell %s (%s)\n", version, commit)
		return 0
	}

	settings := config.Default()
	if configPath != "" {
		var err error
		settings, err = config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	buf := buffer.NewBufferFromString(initialText, settings.BufferOptions()...)

	if configPath != "" {
		w, err := config.NewWatcher(configPath, func(s config.Settings, err error) {
			if err != nil {
				fmt.Fprintf(os.Stderr, "config reload failed: %v\n", err)
				return
			}
			buf.SetMaxHistory(s.History.MaxEntries)
			buf.SetCoalescing(s.CoalesceConfig())
			fmt.Fprintf(os.Stderr, "config reloaded from %s\n", configPath)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: watching config: %v\n", err)
			return 1
		}
		defer w.Close()
	}

	return repl(buf, os.Stdin, os.Stdout)
}

func repl(buf *buffer.Buffer, in io.Reader, out io.Writer) int {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return 0
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return 0
		}

		if err := execute(buf, out, line); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func execute(buf *buffer.Buffer, out io.Writer, line string) error {
	cmd, rest, _ := strings.Cut(line, " ")

	switch cmd {
	case "insert":
		at, text, err := parseOffsetText(rest)
		if err != nil {
			return err
		}
		if err := buf.Insert(at, text); err != nil {
			return err
		}
		fmt.Fprintf(out, "v%d %q\n", buf.Version(), buf.Text())

	case "type":
		at, text, err := parseOffsetText(rest)
		if err != nil {
			return err
		}
		if err := buf.Type(at, text); err != nil {
			return err
		}
		fmt.Fprintf(out, "v%d %q\n", buf.Version(), buf.Text())

	case "delete":
		start, end, _, err := parseRange(rest, false)
		if err != nil {
			return err
		}
		if err := buf.Delete(start, end); err != nil {
			return err
		}
		fmt.Fprintf(out, "v%d %q\n", buf.Version(), buf.Text())

	case "replace":
		start, end, text, err := parseRange(rest, true)
		if err != nil {
			return err
		}
		if err := buf.Replace(start, end, text); err != nil {
			return err
		}
		fmt.Fprintf(out, "v%d %q\n", buf.Version(), buf.Text())

	case "undo":
		ok, err := buf.Undo()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "nothing to undo")
			return nil
		}
		fmt.Fprintf(out, "v%d %q\n", buf.Version(), buf.Text())

	case "redo":
		ok, err := buf.Redo()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "nothing to redo")
			return nil
		}
		fmt.Fprintf(out, "v%d %q\n", buf.Version(), buf.Text())

	case "show":
		fmt.Fprintln(out, buf.Text())

	case "version":
		fmt.Fprintf(out, "v%d, %d bytes\n", buf.Version(), buf.Len())

	case "history":
		undo := buf.UndoInfo()
		redo := buf.RedoInfo()
		fmt.Fprintf(out, "undo (%d):\n", len(undo))
		for i := len(undo) - 1; i >= 0; i-- {
			fmt.Fprintf(out, "  %s  %s\n", undo[i].Timestamp.Format("15:04:05"), undo[i].Summary)
		}
		fmt.Fprintf(out, "redo (%d):\n", len(redo))
		for i := len(redo) - 1; i >= 0; i-- {
			fmt.Fprintf(out, "  %s  %s\n", redo[i].Timestamp.Format("15:04:05"), redo[i].Summary)
		}

	case "help":
		fmt.Fprint(out, helpText)

	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}

	return nil
}

// parseOffsetText parses "OFFSET TEXT", where TEXT may contain spaces.
func parseOffsetText(rest string) (buffer.ByteOffset, string, error) {
	offStr, text, ok := strings.Cut(rest, " ")
	if !ok || text == "" {
		return 0, "", fmt.Errorf("usage: OFFSET TEXT")
	}
	at, err := strconv.ParseInt(offStr, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("bad offset %q", offStr)
	}
	return buffer.ByteOffset(at), text, nil
}

// parseRange parses "START END" and, when withText is set, a trailing
// TEXT that may contain spaces.
func parseRange(rest string, withText bool) (start, end buffer.ByteOffset, text string, err error) {
	startStr, rest, ok := strings.Cut(rest, " ")
	if !ok {
		return 0, 0, "", fmt.Errorf("usage: START END%s", usageSuffix(withText))
	}
	endStr := rest
	if withText {
		endStr, text, ok = strings.Cut(rest, " ")
		if !ok || text == "" {
			return 0, 0, "", fmt.Errorf("usage: START END TEXT")
		}
	}

	s, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil {
		return 0, 0, "", fmt.Errorf("bad offset %q", startStr)
	}
	e, err := strconv.ParseInt(endStr, 10, 64)
	if err != nil {
		return 0, 0, "", fmt.Errorf("bad offset %q", endStr)
	}
	return buffer.ByteOffset(s), buffer.ByteOffset(e), text, nil
}

func usageSuffix(withText bool) string {
	if withText {
		return " TEXT"
	}
	return ""
}

const helpText = `commands:
  insert OFFSET TEXT      insert TEXT at OFFSET
  type OFFSET TEXT        insert as typed input (coalesces into undo runs)
  delete START END        delete the byte range [START, END)
  replace START END TEXT  replace the byte range [START, END) with TEXT
  undo                    roll back the most recent edit
  redo                    re-apply the most recently undone edit
  show                    print the buffer text
  version                 print the buffer version and length
  history                 list undo and redo entries, newest first
  quit                    exit
`
