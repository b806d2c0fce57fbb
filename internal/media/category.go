package media

import (
	"path"
	"strings"
)

// Category is the coarse MIME type of an asset.
type Category string

const (
	CategoryAudio    Category = "audio"
	CategoryVideo    Category = "video"
	CategoryImage    Category = "image"
	CategoryDocument Category = "document"
	CategoryUnknown  Category = "unknown"
)

var extensionCategories = map[string]Category{
	"mp3":  CategoryAudio,
	"m4a":  CategoryAudio,
	"wav":  CategoryAudio,
	"flac": CategoryAudio,
	"ogg":  CategoryAudio,
	"opus": CategoryAudio,
	"aac":  CategoryAudio,
	"mp4":  CategoryVideo,
	"m4v":  CategoryVideo,
	"webm": CategoryVideo,
	"mkv":  CategoryVideo,
	"mov":  CategoryVideo,
	"jpg":  CategoryImage,
	"jpeg": CategoryImage,
	"png":  CategoryImage,
	"svg":  CategoryImage,
	"gif":  CategoryImage,
	"webp": CategoryImage,
	"tif":  CategoryImage,
	"tiff": CategoryImage,
	"pdf":  CategoryDocument,
}

// CategoryFromExtension maps a file extension (with or without leading dot,
// any case) to its category.
func CategoryFromExtension(ext string) Category {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if c, ok := extensionCategories[ext]; ok {
		return c
	}
	return CategoryUnknown
}

// ExtensionOf returns the lower-cased extension of name without the dot.
func ExtensionOf(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if ext == "jpeg" {
		return "jpg"
	}
	return ext
}

// IsMediaExtension reports whether ext belongs to a known category.
func IsMediaExtension(ext string) bool {
	return CategoryFromExtension(ext) != CategoryUnknown
}
