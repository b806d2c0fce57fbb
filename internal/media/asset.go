package media

import (
	"fmt"
	"path"
	"strings"

	"baldr/internal/mediauri"
	"baldr/internal/multipart"
	"baldr/internal/services"
)

// Asset is the resolved representation of one media authority.
type Asset struct {
	Ref             string
	UUID            string
	Category        Category
	Extension       string
	HTTPURL         string
	PreviewHTTPURL  string
	WaveformHTTPURL string
	PartCount       int
	Shortcut        string
	Samples         *SampleCollection
	Record          *Record
}

// NewAsset builds an asset from a catalog record. httpBaseURL is prefixed to
// the record's path to form the asset URL.
func NewAsset(rec *Record, httpBaseURL string) (*Asset, error) {
	if rec == nil {
		return nil, services.Wrap(services.ErrProgramming, "resolve", "new asset", "nil record", nil)
	}
	if strings.TrimSpace(rec.Ref) == "" {
		return nil, services.Wrap(services.ErrValidation, "resolve", "new asset", "record has no ref", nil)
	}

	ext := strings.ToLower(strings.TrimPrefix(rec.Extension, "."))
	if ext == "" {
		ext = ExtensionOf(firstNonEmpty(rec.Filename, rec.Path))
	}
	if ext == "" {
		return nil, services.Wrap(services.ErrValidation, "resolve", "new asset",
			fmt.Sprintf("asset %q has no file extension", rec.Ref), nil)
	}

	relPath := strings.TrimLeft(firstNonEmpty(rec.Path, rec.Filename), "/")
	httpURL := strings.TrimRight(httpBaseURL, "/")
	if relPath != "" {
		httpURL += "/" + relPath
	}

	asset := &Asset{
		Ref:       mediauri.SchemeRef + ":" + mediauri.RemoveScheme(rec.Ref),
		Category:  CategoryFromExtension(ext),
		Extension: ext,
		HTTPURL:   httpURL,
		PartCount: rec.MultiPartCount,
		Shortcut:  rec.Shortcut,
		Record:    rec,
	}
	if rec.UUID != "" {
		asset.UUID = mediauri.SchemeUUID + ":" + mediauri.RemoveScheme(rec.UUID)
	}
	if asset.PartCount < 1 {
		asset.PartCount = 1
	}
	if rec.PreviewImage {
		asset.PreviewHTTPURL = httpURL + "_preview.jpg"
	}
	if rec.HasWaveform {
		asset.WaveformHTTPURL = httpURL + "_waveform.png"
	}

	if asset.IsPlayable() {
		samples, err := NewSampleCollection(asset)
		if err != nil {
			return nil, err
		}
		asset.Samples = samples
	}
	return asset, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// IsPlayable reports whether the asset is audio or video.
func (a *Asset) IsPlayable() bool {
	return a.Category == CategoryAudio || a.Category == CategoryVideo
}

// IsVisible reports whether the asset is an image or video.
func (a *Asset) IsVisible() bool {
	return a.Category == CategoryImage || a.Category == CategoryVideo
}

// TitleSafe returns a title that is never empty: the record title, the file
// name or the reference.
func (a *Asset) TitleSafe() string {
	if a.Record != nil {
		if t := strings.TrimSpace(a.Record.Title); t != "" {
			return t
		}
		if a.Record.Filename != "" {
			return a.Record.Filename
		}
	}
	if a.HTTPURL != "" {
		if base := path.Base(a.HTTPURL); base != "." && base != "/" {
			return base
		}
	}
	return a.Ref
}

// LinkedURIs returns the media URIs referenced from the record (cover images
// and any URI valued meta keys) excluding the asset's own URIs.
func (a *Asset) LinkedURIs() []string {
	if a.Record == nil {
		return nil
	}
	set := mediauri.NewOrderedSet()
	if a.Record.Cover != "" {
		mediauri.FindURIs(a.Record.Cover, set)
	}
	mediauri.FindURIs(a.Record.Meta, set)
	out := make([]string, 0, set.Len())
	for _, uri := range set.Values() {
		if uri == a.Ref || uri == a.UUID {
			continue
		}
		out = append(out, uri)
	}
	return out
}

// MultiPartHTTPURLByNo returns the URL of part no of the asset.
func (a *Asset) MultiPartHTTPURLByNo(no int) (string, error) {
	if a.PartCount == 1 {
		return a.HTTPURL, nil
	}
	if no > a.PartCount {
		return "", &multipart.InvalidRangeError{
			Spec:   fmt.Sprint(no),
			Reason: fmt.Sprintf("the asset has only %d parts, not %d", a.PartCount, no),
		}
	}
	return multipart.FormatFileName(a.HTTPURL, no)
}

// Selection binds a URI fragment to this asset's parts.
func (a *Asset) Selection(fragment string) (*multipart.Selection, error) {
	return multipart.NewSelection(a.HTTPURL, a.PartCount, fragment)
}
