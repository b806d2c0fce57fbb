package masters

import (
	"baldr/internal/media"
	"baldr/internal/multipart"
)

// sampleInfo is the resolved form of a sample as stored in slide fields.
func sampleInfo(s *media.Sample) map[string]any {
	info := map[string]any{
		"ref":       s.Ref,
		"title":     sampleTitle(s),
		"titleSafe": s.TitleSafe(),
		"httpUrl":   s.Asset.HTTPURL,
		"startTime": s.StartTime,
		"fadeIn":    s.FadeIn,
		"fadeOut":   s.FadeOut,
	}
	if end, ok := s.End(); ok {
		info["endTime"] = end
	}
	if s.Shortcut != "" {
		info["shortcut"] = s.Shortcut
	}
	if s.Asset.PreviewHTTPURL != "" {
		info["previewHttpUrl"] = s.Asset.PreviewHTTPURL
	}
	return info
}

// sampleTitle is the plain title of a sample. The complete sample carries the
// title of its asset.
func sampleTitle(s *media.Sample) string {
	if s.IsComplete() {
		return s.Asset.TitleSafe()
	}
	return s.Title
}

// assetInfo is the resolved form of an asset as stored in slide fields.
func assetInfo(a *media.Asset) map[string]any {
	info := map[string]any{
		"ref":      a.Ref,
		"title":    a.TitleSafe(),
		"category": string(a.Category),
		"httpUrl":  a.HTTPURL,
	}
	if a.PreviewHTTPURL != "" {
		info["previewHttpUrl"] = a.PreviewHTTPURL
	}
	if a.WaveformHTTPURL != "" {
		info["waveformHttpUrl"] = a.WaveformHTTPURL
	}
	if a.Shortcut != "" {
		info["shortcut"] = a.Shortcut
	}
	return info
}

// partURLs lists the URLs of a multipart selection as []any for slide fields.
func partURLs(sel *multipart.Selection) ([]any, error) {
	urls, err := sel.HTTPURLs()
	if err != nil {
		return nil, err
	}
	out := make([]any, len(urls))
	for i, u := range urls {
		out[i] = u
	}
	return out, nil
}
