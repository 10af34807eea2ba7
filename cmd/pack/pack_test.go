package pack

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ValentinKolb/dBin/lib/archive"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	return path
}

func TestPackUnpackRoundTrip(t *testing.T) {
	src := writeEnvFile(t, "# comment\nPORT=8080\nHOST=localhost\nGREETING=\"hello world\"\n")

	for _, compression := range []archive.Compression{archive.CompressionNone, archive.CompressionLZ4, archive.CompressionZstd} {
		t.Run(compression.String(), func(t *testing.T) {
			var buf bytes.Buffer
			packed, err := packEnv(src, &buf, compression)
			if err != nil {
				t.Fatalf("Failed to pack: %v", err)
			}
			if packed.Entries != 3 {
				t.Errorf("Expected 3 entries, got %d", packed.Entries)
			}

			m, entries, err := unpackEnv(&buf)
			if err != nil {
				t.Fatalf("Failed to unpack: %v", err)
			}
			if m != packed {
				t.Errorf("Manifest changed: %+v != %+v", m, packed)
			}
			if v, _ := entries.Get("GREETING"); v != "hello world" {
				t.Errorf("Expected GREETING=hello world, got %q", v)
			}

			text, err := formatEnv(entries)
			if err != nil {
				t.Fatalf("Failed to format: %v", err)
			}
			lines := strings.Split(text, "\n")
			if len(lines) != 3 || !strings.HasPrefix(lines[0], "GREETING=") || !strings.HasPrefix(lines[2], "PORT=") {
				t.Errorf("Expected sorted dotenv output, got:\n%s", text)
			}
		})
	}
}

func TestUnpackRejectsForeignData(t *testing.T) {
	if _, _, err := unpackEnv(strings.NewReader("PORT=8080\n")); err == nil {
		t.Errorf("Expected error for a file that is not an archive")
	}
}

func TestPackMissingFile(t *testing.T) {
	if _, err := packEnv(filepath.Join(t.TempDir(), "missing.env"), &bytes.Buffer{}, archive.CompressionNone); err == nil {
		t.Errorf("Expected error for a missing input file")
	}
}
