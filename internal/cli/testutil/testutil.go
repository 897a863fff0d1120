// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/leapstack-labs/dbtgen/internal/cli/output"
)

// SetupTestProject creates a temporary directory holding a dbtgen.yaml with
// the given body and returns its path.
func SetupTestProject(t *testing.T, configBody string) string {
	t.Helper()

	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "dbtgen.yaml"), []byte(configBody), 0600); err != nil {
		t.Fatalf("failed to create dbtgen.yaml: %v", err)
	}
	return tmpDir
}

// Chdir switches the working directory to dir until the test ends.
func Chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir to %s: %v", dir, err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
}

// TestRenderer wraps a Renderer whose output is captured. The buffers are
// safe to read while another goroutine renders.
type TestRenderer struct {
	*output.Renderer
	out    *syncBuffer
	errOut *syncBuffer
}

// NewTestRenderer creates a test renderer with the given mode and TTY state.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out, errOut := &syncBuffer{}, &syncBuffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		out:      out,
		errOut:   errOut,
	}
}

// NewTestRendererMarkdown creates a test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// Output returns what was written to the result writer.
func (tr *TestRenderer) Output() string {
	return tr.out.String()
}

// ErrorOutput returns what was written to the diagnostics writer.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.errOut.String()
}

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

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertExists checks that every relative path exists under root.
func AssertExists(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(p))); err != nil {
			t.Errorf("expected %s to exist under %s: %v", p, root, err)
		}
	}
}

// Lines splits output into non-empty trimmed lines.
func Lines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
