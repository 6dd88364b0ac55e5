package debug

import (
	"bytes"
	"strings"
	"testing"
)

func TestDebugDisabledByDefault(t *testing.T) {
	t.Setenv("NOTEGREP_DEBUG", "")

	var buf bytes.Buffer
	SetDebugOutput(&buf)
	defer SetDebugOutput(nil)

	Printf("should not appear %d\n", 1)
	LogSearch("should not appear either\n")

	if buf.Len() != 0 {
		t.Errorf("Expected no debug output when disabled, got %q", buf.String())
	}
}

func TestDebugOutputWhenEnabled(t *testing.T) {
	t.Setenv("NOTEGREP_DEBUG", "1")

	var buf bytes.Buffer
	SetDebugOutput(&buf)
	defer SetDebugOutput(nil)

	Printf("plain %s\n", "message")
	LogSearch("scanned %d files\n", 7)
	LogReplace("rewrote %s\n", "a.md")

	out := buf.String()
	if !strings.Contains(out, "[DEBUG] plain message") {
		t.Errorf("Expected plain debug line, got %q", out)
	}
	if !strings.Contains(out, "[DEBUG:SEARCH] scanned 7 files") {
		t.Errorf("Expected search debug line, got %q", out)
	}
	if !strings.Contains(out, "[DEBUG:REPLACE] rewrote a.md") {
		t.Errorf("Expected replace debug line, got %q", out)
	}
}

func TestNilWriterIsSafe(t *testing.T) {
	t.Setenv("NOTEGREP_DEBUG", "1")

	SetDebugOutput(nil)
	// Must not panic
	Printf("into the void\n")
	LogTraverse("also into the void\n")
}
