package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"baldr/internal/logging"
	"baldr/internal/media"
	"baldr/internal/mediauri"
	"baldr/internal/textutil"
)

// ImportOptions controls Import.
type ImportOptions struct {
	// WriteBack stores generated refs and uuids in the sidecar files.
	WriteBack bool
	Logger    *slog.Logger
}

// ImportReport summarizes one Import run.
type ImportReport struct {
	Scanned  int
	Created  int
	Updated  int
	Minted   int
	Rejected []RejectedSidecar
}

// RejectedSidecar is a sidecar that failed validation.
type RejectedSidecar struct {
	Path   string
	Reason string
}

// Import scans root for sidecars and upserts their records into store. Sidecars
// without a uuid get a fresh one, sidecars without a ref get one derived from
// the file name. Invalid records are reported and skipped. Concurrent imports
// into the same database are rejected.
func Import(ctx context.Context, store *SQLiteStore, root string, opts ImportOptions) (*ImportReport, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "catalog-import")

	lockPath := store.Path() + ".lock"
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire import lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another import holds %s", lockPath)
	}
	defer func() { _ = lock.Unlock() }()

	sidecars, err := ScanDir(root)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{Scanned: len(sidecars)}
	for _, sc := range sidecars {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		minted := completeRecord(sc.Record, sc.MediaPath)
		if minted {
			report.Minted++
			if opts.WriteBack {
				if err := WriteSidecar(sc.MetaPath, sc.Record); err != nil {
					return report, err
				}
			}
		}
		if err := ValidateRecord(sc.Record); err != nil {
			report.Rejected = append(report.Rejected, RejectedSidecar{Path: sc.MetaPath, Reason: err.Error()})
			logging.WarnWithContext(logger, "sidecar rejected", "catalog_sidecar_rejected",
				logging.String("path", sc.MetaPath),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "fix the sidecar and import again"),
				logging.String(logging.FieldImpact, "asset is not available to presentations"))
			continue
		}
		created, err := store.Upsert(ctx, sc.Record)
		if err != nil {
			return report, err
		}
		if created {
			report.Created++
		} else {
			report.Updated++
		}
		logger.Debug("asset imported",
			logging.String(logging.FieldURI, mediauri.SchemeRef+":"+mediauri.RemoveScheme(sc.Record.Ref)),
			logging.Bool("created", created))
	}

	logger.Info("catalog import finished",
		logging.String("media_dir", root),
		logging.Int("scanned", report.Scanned),
		logging.Int("created", report.Created),
		logging.Int("updated", report.Updated),
		logging.Int("rejected", len(report.Rejected)))
	return report, nil
}

// completeRecord fills a missing uuid and ref; a derived ref also yields a
// title. It reports whether anything was generated.
func completeRecord(rec *media.Record, mediaPath string) bool {
	changed := false
	if strings.TrimSpace(rec.UUID) == "" {
		rec.UUID = uuid.NewString()
		changed = true
	}
	if strings.TrimSpace(rec.Ref) == "" {
		stem := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
		if ref := textutil.Idify(stem); ref != "" {
			rec.Ref = ref
			if strings.TrimSpace(rec.Title) == "" {
				rec.Title = textutil.TitleFromID(ref)
			}
			changed = true
		}
	}
	return changed
}
