package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinterClassesAndEscapes(t *testing.T) {
	var out, diag bytes.Buffer
	plain := NewPrinterTo(&out, &diag, []Class{Required, Error}, false)
	plain.Out(Required, "%s%s%s\n", Red, "hello", Reset)
	plain.Out(Normal, "suppressed\n")
	plain.Out(Error, "problem\n")
	if out.String() != "hello\n" {
		t.Errorf("unexpected terminal output %q", out.String())
	}
	if diag.String() != "problem\n" {
		t.Errorf("unexpected diagnosis output %q", diag.String())
	}

	fancy := NewPrinterTo(&out, &diag, []Class{Required}, true)
	if got := fancy.Sprintf("%s!", BoldIntensity); got != "\x1B[1m!" {
		t.Errorf("escape sequence lost: %q", got)
	}
}

func TestVisualBoardTree(t *testing.T) {
	tree := NewVisualBoardTree("board")
	first := tree.InsertPage("Page 1")
	first.InsertEntry("zulu.txt")
	first.InsertEntry("alpha.txt")
	tree.InsertPage("Page 2")
	rendered := tree.Render()
	for _, expected := range []string{"board", "Page 1", "zulu.txt", "alpha.txt", "Page 2"} {
		if !strings.Contains(rendered, expected) {
			t.Errorf("rendering lacks %q:\n%s", expected, rendered)
		}
	}
	if strings.Index(rendered, "zulu.txt") > strings.Index(rendered, "alpha.txt") {
		t.Error("entry order not preserved")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "info", false)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("hidden")
	logger.Info("shown", "key", "value")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected log output %q", buf.String())
	}
	if _, err := NewLogger(&buf, "loud", false); err == nil {
		t.Error("bogus level accepted")
	}
	silent, _ := NewLogger(&buf, "off", false)
	silent.Error("never")
	if strings.Contains(buf.String(), "never") {
		t.Error("off level must discard")
	}
}

func TestPlural(t *testing.T) {
	if Plural(1, "page", "pages") != "page" || Plural(0, "page", "pages") != "pages" {
		t.Error("plural selection wrong")
	}
	if Indent(2, "a\nb") != "  a\n  b" {
		t.Error("indent wrong")
	}
}
