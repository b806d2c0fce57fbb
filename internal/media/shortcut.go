package media

import (
	"fmt"
	"sync"
)

// shortcutCounter hands out `<key> 1` .. `<key> 9`, then `<key> 0`, then nothing.
type shortcutCounter struct {
	key   string
	count int
}

func (c *shortcutCounter) next() string {
	if c.count >= 10 {
		return ""
	}
	c.count++
	if c.count == 10 {
		return fmt.Sprintf("%s 0", c.key)
	}
	return fmt.Sprintf("%s %d", c.key, c.count)
}

// ShortcutManager assigns keyboard shortcuts to samples (audio `a N`, video
// `v N`) and image assets (`i N`). Explicit shortcuts from the catalog are kept.
type ShortcutManager struct {
	mu    sync.Mutex
	audio shortcutCounter
	video shortcutCounter
	image shortcutCounter
}

func NewShortcutManager() *ShortcutManager {
	return &ShortcutManager{
		audio: shortcutCounter{key: "a"},
		video: shortcutCounter{key: "v"},
		image: shortcutCounter{key: "i"},
	}
}

// AssignAsset sets the shortcut of an image asset and of every sample of a
// playable asset.
func (m *ShortcutManager) AssignAsset(asset *Asset) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if asset.Category == CategoryImage && asset.Shortcut == "" {
		asset.Shortcut = m.image.next()
	}
	if asset.Samples == nil {
		return
	}
	for _, sample := range asset.Samples.order {
		if sample.Shortcut != "" {
			continue
		}
		switch asset.Category {
		case CategoryAudio:
			sample.Shortcut = m.audio.next()
		case CategoryVideo:
			sample.Shortcut = m.video.next()
		}
	}
}

// Reset restarts all counters.
func (m *ShortcutManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audio.count = 0
	m.video.count = 0
	m.image.count = 0
}
