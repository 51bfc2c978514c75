package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestPDFRenderer(t *testing.T) {
	md := strings.Join([]string{
		"# Example Report",
		"",
		"## Overview",
		"",
		"A paragraph of body text with some detail.",
		"",
		"- first bullet",
		"- second bullet",
		"",
		"## Sources",
		"",
		"- example.com",
	}, "\n")

	out, err := NewPDFRenderer().Render(md)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header: %q", out[:min(16, len(out))])
	}
}

func TestPDFRenderer_EmptyMarkdown(t *testing.T) {
	out, err := NewPDFRenderer().Render("")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if len(out) == 0 {
		t.Error("empty markdown should still produce a valid empty document")
	}
}
