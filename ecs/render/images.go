// Package render caches decoded sprite images so entities built from the same
// prefab share one GPU image.
package render

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/candle/assets"
)

var (
	mu     sync.Mutex
	images = map[string]*ebiten.Image{}
)

// LoadImage returns the cached image for key, decoding it from the embedded
// assets on first use.
func LoadImage(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("empty image key")
	}

	mu.Lock()
	defer mu.Unlock()
	if img, ok := images[key]; ok {
		return img, nil
	}
	img, err := assets.LoadImage(key)
	if err != nil {
		return nil, err
	}
	images[key] = img
	return img, nil
}

// Cached reports whether key has been loaded.
func Cached(key string) bool {
	mu.Lock()
	defer mu.Unlock()
	_, ok := images[key]
	return ok
}
