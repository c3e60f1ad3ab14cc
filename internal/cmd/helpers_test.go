package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"orderedprops/internal/config"
)

// setupTestApp creates an App writing to a buffer, with a temp directory for
// properties files. The date comment is suppressed so file contents are
// deterministic.
func setupTestApp(t *testing.T) (*App, *bytes.Buffer, string) {
	t.Helper()
	cfg := config.Default()
	cfg.Write.SuppressDate = true

	var out bytes.Buffer
	app := &App{
		Config: cfg,
		Out:    &out,
		Err:    &bytes.Buffer{},
	}
	return app, &out, t.TempDir()
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(raw)
}

func seedProperties(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "app.properties")
	writeTestFile(t, path, content)
	return path
}

// syncBuffer is a bytes.Buffer safe for use from a background command.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
