package main

import (
	"strings"
	"testing"
	"time"

	"github.com/calebmills/inkwell/internal/engine/buffer"
	"github.com/calebmills/inkwell/internal/engine/history"
)

func TestExecuteEditCommands(t *testing.T) {
	buf := buffer.NewBufferFromString("original")
	var out strings.Builder

	steps := []struct {
		line     string
		wantText string
	}{
		{"insert 8  text", "original text"},
		{"undo", "original"},
		{"redo", "original text"},
		{"replace 0 8 rewritten", "rewritten text"},
		{"delete 9 14", "rewritten"},
	}

	for _, step := range steps {
		if err := execute(buf, &out, step.line); err != nil {
			t.Fatalf("%q failed: %v", step.line, err)
		}
		if buf.Text() != step.wantText {
			t.Errorf("after %q got %q, want %q", step.line, buf.Text(), step.wantText)
		}
	}
}

func TestExecuteRejectsBadInput(t *testing.T) {
	buf := buffer.NewBufferFromString("abc")
	var out strings.Builder

	lines := []string{
		"insert",
		"insert x text",
		"delete 0",
		"delete 0 y",
		"replace 0 1",
		"frobnicate",
		"delete 100 105",
	}
	for _, line := range lines {
		if err := execute(buf, &out, line); err == nil {
			t.Errorf("%q should fail", line)
		}
	}
	if buf.Text() != "abc" {
		t.Errorf("rejected commands changed the text to %q", buf.Text())
	}
}

func TestExecuteTypeCoalesces(t *testing.T) {
	// A generous interval so a scheduler stall between commands cannot
	// split the typing run.
	buf := buffer.NewBufferFromString("", buffer.WithCoalescing(history.CoalesceConfig{
		Enabled:  true,
		Interval: time.Hour,
		MaxRun:   64,
	}))
	var out strings.Builder

	for i, ch := range []string{"h", "i"} {
		line := "type " + string(rune('0'+i)) + " " + ch
		if err := execute(buf, &out, line); err != nil {
			t.Fatalf("%q failed: %v", line, err)
		}
	}

	if buf.UndoDepth() != 1 {
		t.Errorf("typed run should be one undo unit, got %d", buf.UndoDepth())
	}
	if err := execute(buf, &out, "undo"); err != nil {
		t.Fatal(err)
	}
	if buf.Text() != "" {
		t.Errorf("undo should remove the run, got %q", buf.Text())
	}
}

func TestReplQuits(t *testing.T) {
	buf := buffer.NewBufferFromString("")
	var out strings.Builder

	code := repl(buf, strings.NewReader("insert 0 hi\nquit\n"), &out)
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if buf.Text() != "hi" {
		t.Errorf("got %q", buf.Text())
	}
	if !strings.Contains(out.String(), `v1 "hi"`) {
		t.Errorf("missing apply echo in output:\n%s", out.String())
	}
}
