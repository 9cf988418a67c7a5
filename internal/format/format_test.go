package format

import (
	"strings"
	"testing"
)

func TestJSONFormatter(t *testing.T) {
	var out strings.Builder
	f := JSONFormatter{}
	if err := f.Write(&out, map[string]int{"week": 3}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if got := out.String(); got != "{\"week\":3}\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestJSONFormatterIndent(t *testing.T) {
	var out strings.Builder
	f := JSONFormatter{Indent: true}
	if err := f.Write(&out, map[string]int{"week": 3}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.Contains(out.String(), "\n  \"week\": 3\n") {
		t.Errorf("expected indented output, got %q", out.String())
	}
}
