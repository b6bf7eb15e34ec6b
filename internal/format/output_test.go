package format

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseOutput(t *testing.T) {
	cases := map[string]Output{
		"plain": Plain,
		"text":  Plain,
		"p":     Plain,
		"Plain": Plain,
		"json":  JSON,
		"JSON":  JSON,
		"j":     JSON,
	}
	for in, want := range cases {
		got, err := ParseOutput(in)
		if err != nil {
			t.Fatalf("ParseOutput(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseOutput(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseOutput("xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestFormatPlainScalars(t *testing.T) {
	if !strings.Contains(FormatPlain(nil), "null") {
		t.Fatal("nil should render as null")
	}
	if !strings.Contains(FormatPlain(true), "true") {
		t.Fatal("bool should render")
	}
	if !strings.Contains(FormatPlain(float64(42)), "42") {
		t.Fatal("number should render without decimals")
	}
	if !strings.Contains(FormatPlain("hello"), "hello") {
		t.Fatal("string should render")
	}
}

func TestFormatPlainEmptyArray(t *testing.T) {
	if !strings.Contains(FormatPlain([]any{}), "<empty>") {
		t.Fatal("empty array should render placeholder")
	}
}

func TestFormatPlainObject(t *testing.T) {
	out := FormatPlain(map[string]any{"name": "scout", "count": float64(1)})
	for _, want := range []string{"name", "scout", "count", "1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestFormatPlainArrayOfObjectsBecomesTable(t *testing.T) {
	out := FormatPlain([]any{
		map[string]any{"id": float64(1), "name": "a"},
		map[string]any{"id": float64(2), "name": "b"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header+rule+2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "id") || !strings.Contains(lines[0], "name") {
		t.Fatalf("missing header columns: %q", lines[0])
	}
	if !strings.Contains(lines[1], "---") {
		t.Fatalf("missing rule: %q", lines[1])
	}
}

func TestFormatPlainLongCellTruncated(t *testing.T) {
	out := FormatPlain([]any{
		map[string]any{"name": "a-very-long-endpoint-name"},
		map[string]any{"name": "b"},
	})
	if !strings.Contains(out, "…") {
		t.Fatalf("expected truncation marker:\n%s", out)
	}
}

func TestFormatJSONRoundtrip(t *testing.T) {
	v := map[string]any{"x": float64(1), "y": []any{float64(2), float64(3)}}
	s, err := FormatJSON(v)
	if err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("roundtrip mismatch: %v", parsed)
	}
}
