package report

import (
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	combined := "WEBSITE CONTENT:\nsome text\n\nEXTERNAL CONTEXT:\nsome snippets"
	prompt := BuildPrompt(combined)

	begin := strings.Index(prompt, beginSourceMarker)
	end := strings.Index(prompt, endSourceMarker)
	if begin < 0 || end < 0 {
		t.Fatal("source-material markers missing from prompt")
	}
	if begin > end {
		t.Fatal("markers out of order")
	}

	inner := prompt[begin+len(beginSourceMarker) : end]
	if strings.TrimSpace(inner) != combined {
		t.Errorf("content between markers = %q, want %q", strings.TrimSpace(inner), combined)
	}
}

func TestBuildPrompt_ContentWithFormatVerbs(t *testing.T) {
	combined := "Discount: 50%s off, growth %d, literal %%v"
	prompt := BuildPrompt(combined)

	if !strings.Contains(prompt, combined) {
		t.Errorf("format verbs in content were mangled: %q", prompt)
	}
	// Exactly one interpolation: the template placeholder must be gone.
	if strings.Count(prompt, combined) != 1 {
		t.Errorf("content interpolated %d times", strings.Count(prompt, combined))
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	a := BuildPrompt("same input")
	b := BuildPrompt("same input")
	if a != b {
		t.Error("BuildPrompt is not deterministic")
	}
}
