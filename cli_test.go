package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestAnalyzeCommandJSON(t *testing.T) {
	path := writeFile(t, "resume.txt", "I was responsible for managing the team. I helped with tasks.")

	out, err := runCLI(t, "analyze", "-f", path, "-o", "json", "--tab", "impact")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	var doc struct {
		Filename string `json:"filename"`
		Score    int    `json:"score"`
		Words    int    `json:"word_count"`
		Issues   []struct {
			ID string `json:"id"`
		} `json:"issues"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid json output %q: %v", out, err)
	}
	if doc.Filename != "resume.txt" || doc.Score != 60 || doc.Words != 11 || len(doc.Issues) != 3 {
		t.Fatalf("unexpected report %+v", doc)
	}
}

func TestAnalyzeCommandPositionalText(t *testing.T) {
	path := writeFile(t, "resume.txt", "")

	out, err := runCLI(t, "analyze", path)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !strings.Contains(out, "Score: 80/100") || !strings.Contains(out, "1 words, 2 issues") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestAnalyzeCommandNoFileIsNoop(t *testing.T) {
	out, err := runCLI(t, "analyze")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
}

func TestAnalyzeCommandErrors(t *testing.T) {
	if _, err := runCLI(t, "analyze", "-f", filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected an error for a missing file")
	}

	path := writeFile(t, "resume.txt", "Led 4 engineers")
	if _, err := runCLI(t, "analyze", "-f", path, "--tab", "structure"); err == nil {
		t.Fatal("expected an error for an unknown tab")
	}
	if _, err := runCLI(t, "analyze", "-f", path, "-o", "xml"); err == nil {
		t.Fatal("expected an error for an unknown format")
	}

	pdfPath := writeFile(t, "cv.pdf", "not a pdf")
	if _, err := runCLI(t, "analyze", "-f", pdfPath, "--parse-documents"); err == nil {
		t.Fatal("expected an extraction error for a broken pdf")
	}
}

func TestAnalyzeCommandSimulatedDocumentIsSeeded(t *testing.T) {
	path := writeFile(t, "cv.pdf", "%PDF-1.4 binary")

	first, err := runCLI(t, "analyze", "-f", path, "--seed", "42", "-o", "yaml")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	second, err := runCLI(t, "analyze", "-f", path, "--seed", "42", "-o", "yaml")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if first != second {
		t.Fatalf("same seed produced different reports:\n%s\n---\n%s", first, second)
	}
	if !strings.Contains(first, "filename: cv.pdf") {
		t.Fatalf("unexpected yaml output:\n%s", first)
	}
}
