package render

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/atotto/clipboard"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// SystemClipboard writes through the OS clipboard. On headless systems the
// underlying call fails and the pipeline surfaces ErrClipboardUnavailable.
type SystemClipboard struct{}

// WriteText implements ClipboardWriter.
func (SystemClipboard) WriteText(text string) error {
	return clipboardWriteAll(text)
}

// DiskSaver writes artifact text to the filesystem.
type DiskSaver struct {
	// Dir is joined with relative filenames. Empty means the current
	// working directory. Absolute filenames are used as given.
	Dir string
}

// Save implements FileSaver.
func (s DiskSaver) Save(filename string, content []byte) error {
	path := filename
	if s.Dir != "" && !filepath.IsAbs(filename) {
		path = filepath.Join(s.Dir, filename)
	}
	return os.WriteFile(path, content, 0644)
}

// OpenInBrowser writes htmlContent to a temp file and opens it with the
// platform's default browser. Returns the file path. The open is
// fire-and-forget: the browser process is started, not awaited.
func OpenInBrowser(htmlContent string) (string, error) {
	f, err := os.CreateTemp("", "qdev-*.html")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := f.WriteString(htmlContent); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	path := f.Name()
	if err := OpenURL("file://" + path); err != nil {
		return path, err
	}
	return path, nil
}

// OpenURL launches the platform browser for a URL.
func OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
