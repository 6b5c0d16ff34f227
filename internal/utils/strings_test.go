package utils

import (
	"strings"
	"testing"
)

// ---- TruncateString tests ------------------------------------------------------

// TestTruncateString_ShortInput verifies strings under the limit come back
// unchanged.
func TestTruncateString_ShortInput_Unchanged(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}
}

// TestTruncateString_LongInput verifies the suffix records the original
// length.
func TestTruncateString_LongInput_AppendsLengthSuffix(t *testing.T) {
	long := strings.Repeat("x", 600)
	got := TruncateString(long, 100)

	if !strings.HasPrefix(got, strings.Repeat("x", 100)) {
		t.Error("expected truncated prefix to be preserved")
	}
	if !strings.Contains(got, "600") {
		t.Errorf("expected original length in suffix, got %q", got)
	}
}

// TestTruncateString_ZeroLimit verifies the default limit kicks in.
func TestTruncateString_ZeroLimit_UsesDefault(t *testing.T) {
	long := strings.Repeat("y", DefaultMaxStringLength+50)
	got := TruncateString(long, 0)

	if len(got) >= len(long) {
		t.Error("expected truncation with default limit")
	}
}

// ---- JSONToString tests --------------------------------------------------------

// TestJSONToString_Compact verifies default output is compact JSON.
func TestJSONToString_Compact(t *testing.T) {
	got := JSONToString(map[string]int{"a": 1})
	if got != `{"a":1}` {
		t.Errorf("expected compact JSON, got %q", got)
	}
}

// TestJSONToString_Indented verifies the indent flag pretty-prints.
func TestJSONToString_Indented(t *testing.T) {
	got := JSONToString(map[string]int{"a": 1}, true)
	if !strings.Contains(got, "\n") {
		t.Errorf("expected indented JSON, got %q", got)
	}
}

// TestJSONToString_Unmarshalable verifies marshal failures return an error
// string instead of panicking.
func TestJSONToString_Unmarshalable_ReturnsErrorString(t *testing.T) {
	got := JSONToString(make(chan int))
	if !strings.Contains(got, "error") {
		t.Errorf("expected error placeholder, got %q", got)
	}
}

// ---- RedactURL tests -----------------------------------------------------------

// TestRedactURL_StripsQuery verifies credentials carried in the query string
// never survive redaction.
func TestRedactURL_StripsQuery(t *testing.T) {
	got := RedactURL("https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:streamGenerateContent?key=SECRET")

	if strings.Contains(got, "SECRET") {
		t.Fatalf("expected key stripped, got %q", got)
	}
	if !strings.Contains(got, "streamGenerateContent") {
		t.Errorf("expected path preserved, got %q", got)
	}
}

// TestRedactURL_NoQuery verifies plain URLs pass through.
func TestRedactURL_NoQuery_Unchanged(t *testing.T) {
	raw := "https://api.openai.com/v1/chat/completions"
	if got := RedactURL(raw); got != raw {
		t.Errorf("expected unchanged URL, got %q", got)
	}
}
