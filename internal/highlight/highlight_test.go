package highlight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"Go file", "main.go", "go"},
		{"Python file", "script.py", "python"},
		{"Shell file", "build.sh", "bash"},
		{"Unknown extension falls back", "notes.xyz123", FallbackLanguage},
		{"No extension falls back", "README2", FallbackLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLanguage(tt.filename); got != tt.want {
				t.Errorf("DetectLanguage(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestFileToTerminal(t *testing.T) {
	path := writeFixture(t, "hello.py", "def main():\n    print(\"hi\")\n")

	out, err := FileToTerminal(path, Options{})
	if err != nil {
		t.Fatalf("FileToTerminal() error = %v", err)
	}
	if !strings.Contains(out, "print") {
		t.Error("highlighted output lost the source text")
	}
}

func TestFileToTerminal_LineNumbers(t *testing.T) {
	path := writeFixture(t, "two.sh", "echo one\necho two\n")

	out, err := FileToTerminal(path, Options{LineNumbers: true})
	if err != nil {
		t.Fatalf("FileToTerminal() error = %v", err)
	}
	if !strings.Contains(out, "   1  ") || !strings.Contains(out, "   2  ") {
		t.Errorf("line numbers missing:\n%s", out)
	}
}

func TestFileToTerminal_MissingFile(t *testing.T) {
	_, err := FileToTerminal(filepath.Join(t.TempDir(), "nope.py"), Options{})
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFileToHTML(t *testing.T) {
	path := writeFixture(t, "page.go", "package main\n\nfunc main() {}\n")

	page, err := FileToHTML(path, Options{LineNumbers: true, Language: "go"})
	if err != nil {
		t.Fatalf("FileToHTML() error = %v", err)
	}
	for _, want := range []string{"<!DOCTYPE html>", "page.go", "package"} {
		if !strings.Contains(page, want) {
			t.Errorf("FileToHTML() missing %q", want)
		}
	}
}
