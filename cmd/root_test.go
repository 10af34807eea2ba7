package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the root command with args and returns what it printed
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	defer RootCmd.SetArgs(nil)
	err := RootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "dBin v"+Version) {
		t.Errorf("Unexpected version output: %q", out)
	}
}

func TestExecuteVersion(t *testing.T) {
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs([]string{"version"})
	defer RootCmd.SetArgs(nil)

	Execute()

	if !strings.Contains(out.String(), Version) {
		t.Errorf("Unexpected version output: %q", out.String())
	}
}

func TestPackUnpackCommands(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "app.env")
	archivePath := filepath.Join(dir, "app.dbin")
	if err := os.WriteFile(envPath, []byte("PORT=8080\nHOST=localhost\n"), 0o644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	out, err := execute(t, "pack", "--compression", "zstd", envPath, archivePath)
	if err != nil {
		t.Fatalf("pack failed: %v", err)
	}
	if !strings.Contains(out, "packed 2 entries") {
		t.Errorf("Unexpected pack output: %q", out)
	}

	out, err = execute(t, "unpack", archivePath)
	if err != nil {
		t.Fatalf("unpack failed: %v", err)
	}
	hostAt, portAt := strings.Index(out, `HOST="localhost"`), strings.Index(out, "PORT=8080")
	if hostAt < 0 || portAt < 0 || hostAt > portAt {
		t.Errorf("Expected sorted entries, got %q", out)
	}
}

func TestUnknownCompressionFails(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "app.env")
	if err := os.WriteFile(envPath, []byte("A=1\n"), 0o644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	_, err := execute(t, "pack", "--compression", "brotli", envPath, filepath.Join(dir, "out.dbin"))
	if err == nil {
		t.Errorf("Expected an error for an unknown compression")
	}
	// reset the persistent flag for the other tests
	if err := RootCmd.PersistentFlags().Set("compression", "none"); err != nil {
		t.Fatalf("Failed to reset flag: %v", err)
	}
}
