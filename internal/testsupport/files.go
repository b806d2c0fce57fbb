package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteMedia creates an empty media file and its YAML sidecar below root.
// rel is the media file path relative to root.
func WriteMedia(t testing.TB, root, rel, sidecar string) string {
	t.Helper()

	mediaPath := filepath.Join(root, filepath.FromSlash(rel))
	WriteFile(t, mediaPath, "")
	WriteFile(t, mediaPath+".yml", sidecar)
	return mediaPath
}
