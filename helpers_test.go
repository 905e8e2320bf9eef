package main

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/muhammadolammi/resumecritic/internal/critique"
)

func TestCleanJson(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "```json\n{\"summary\":\"ok\"}\n```", want: `{"summary":"ok"}`},
		{in: "```\n{}\n```", want: "{}"},
		{in: "  {\"a\":1}  ", want: `{"a":1}`},
	}
	for _, tt := range tests {
		if got := CleanJson(tt.in); got != tt.want {
			t.Errorf("CleanJson(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIngestResumePlainText(t *testing.T) {
	data := []byte("\xef\xbb\xbfLed 4 engineers")
	text, err := IngestResume("text/plain; charset=utf-8", data, IngestOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Led 4 engineers" {
		t.Fatalf("expected BOM stripped text, got %q", text)
	}
}

func TestIngestResumeSimulatesDocuments(t *testing.T) {
	opts := func() IngestOptions {
		return IngestOptions{Generator: critique.NewGenerator(rand.New(rand.NewPCG(9, 9)))}
	}

	first, err := IngestResume(mimePDF, []byte("not really a pdf"), opts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := IngestResume(mimePDF, []byte("different bytes"), opts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == "" || first != second {
		t.Fatalf("expected the same simulated text for the same seed, got %q and %q", first, second)
	}

	other, err := IngestResume("image/png", nil, IngestOptions{ParseDocuments: true, Generator: critique.NewGenerator(rand.New(rand.NewPCG(9, 9)))})
	if err != nil {
		t.Fatalf("unexpected error for unparseable type: %v", err)
	}
	if other != first {
		t.Fatalf("expected fallback to simulated text, got %q", other)
	}
}

func TestIngestResumeParseDocumentsErrors(t *testing.T) {
	for _, mimeType := range []string{mimePDF, mimeDocx} {
		_, err := IngestResume(mimeType, []byte("garbage"), IngestOptions{ParseDocuments: true})
		if err == nil {
			t.Errorf("expected extraction error for %s", mimeType)
		}
	}
}

func TestExtractResumeTextUnsupported(t *testing.T) {
	_, err := ExtractResumeText("image/png", []byte{0x89})
	if err == nil || !strings.Contains(err.Error(), "unsupported file type") {
		t.Fatalf("expected unsupported file type error, got %v", err)
	}
}

func TestDetectMime(t *testing.T) {
	tests := []struct {
		path string
		data []byte
		want string
	}{
		{path: "cv.txt", want: mimeText},
		{path: "notes.TXT", data: []byte("<html><body>Led 4 teams</body></html>"), want: mimeText},
		{path: "CV.PDF", want: mimePDF},
		{path: "cv.docx", want: mimeDocx},
		{path: "resume", data: []byte("Plain words about work"), want: mimeText},
		{path: "resume", data: []byte("%PDF-1.7\n"), want: mimePDF},
	}
	for _, tt := range tests {
		if got := DetectMime(tt.path, tt.data); got != tt.want {
			t.Errorf("DetectMime(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
