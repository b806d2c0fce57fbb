package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"baldr/internal/media"
	"baldr/internal/multipart"
)

// SidecarSuffix is appended to a media file name to form its metadata file.
const SidecarSuffix = ".yml"

// Sidecar is one media file together with its metadata file.
type Sidecar struct {
	// MetaPath is the absolute path of the `.yml` file.
	MetaPath string
	// MediaPath is the absolute path of the media file.
	MediaPath string
	Record    *media.Record
}

// ScanDir walks root and loads every sidecar that sits next to a media file
// with a known extension. Records get Path, Filename, Extension and, for
// multipart assets, MultiPartCount filled in from the file system.
func ScanDir(root string) ([]Sidecar, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat media dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("media dir %q is not a directory", root)
	}

	var sidecars []Sidecar
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), SidecarSuffix) {
			return nil
		}
		mediaPath := strings.TrimSuffix(path, SidecarSuffix)
		if !media.IsMediaExtension(media.ExtensionOf(mediaPath)) {
			return nil
		}
		if _, err := os.Stat(mediaPath); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		sc, err := loadSidecar(root, path, mediaPath)
		if err != nil {
			return err
		}
		sidecars = append(sidecars, sc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan media dir: %w", err)
	}
	sort.Slice(sidecars, func(i, j int) bool { return sidecars[i].MetaPath < sidecars[j].MetaPath })
	return sidecars, nil
}

func loadSidecar(root, metaPath, mediaPath string) (Sidecar, error) {
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return Sidecar{}, fmt.Errorf("read sidecar: %w", err)
	}
	var rec media.Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return Sidecar{}, fmt.Errorf("decode sidecar %s: %w", metaPath, err)
	}
	rel, err := filepath.Rel(root, mediaPath)
	if err != nil {
		return Sidecar{}, fmt.Errorf("relative path of %s: %w", mediaPath, err)
	}
	rec.Path = filepath.ToSlash(rel)
	rec.Filename = filepath.Base(mediaPath)
	rec.Extension = media.ExtensionOf(mediaPath)
	if rec.MultiPartCount == 0 {
		if n := countParts(mediaPath); n > 1 {
			rec.MultiPartCount = n
		}
	}
	return Sidecar{MetaPath: metaPath, MediaPath: mediaPath, Record: &rec}, nil
}

// countParts returns the number of consecutive part files `<name>_noNNN.<ext>`
// following the first file.
func countParts(first string) int {
	count := 1
	for no := 2; no <= multipart.MaxParts; no++ {
		name, err := multipart.FormatFileName(first, no)
		if err != nil {
			break
		}
		if _, err := os.Stat(name); err != nil {
			break
		}
		count = no
	}
	return count
}

// WriteSidecar stores rec in the sidecar file. Path, Filename and Extension are
// derived from the file system and therefore omitted.
func WriteSidecar(metaPath string, rec *media.Record) error {
	out := *rec
	out.Path = ""
	out.Filename = ""
	out.Extension = ""
	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("encode sidecar: %w", err)
	}
	tmp := metaPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}
	if err := os.Rename(tmp, metaPath); err != nil {
		return fmt.Errorf("replace sidecar: %w", err)
	}
	return nil
}
