package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed *.png audio/*.wav
var assetsFS embed.FS

const sampleRate = 44100

var (
	audioOnce sync.Once
	audioCtx  *audio.Context
)

// AudioContext returns the process audio context, creating it on first use.
func AudioContext() *audio.Context {
	audioOnce.Do(func() {
		if ctx := audio.CurrentContext(); ctx != nil {
			audioCtx = ctx
			return
		}
		audioCtx = audio.NewContext(sampleRate)
	})
	return audioCtx
}

// LoadImage loads an embedded asset by assets-relative path.
func LoadImage(path string) (*ebiten.Image, error) {
	clean := cleanAssetPath(path)
	b, err := assetsFS.ReadFile(clean)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	return assetsFS.ReadFile(clean)
}

// Exists reports whether path names an embedded asset.
func Exists(path string) bool {
	_, err := LoadFile(path)
	return err == nil
}

// LoadAudioPlayer loads an embedded audio asset and creates an audio player.
func LoadAudioPlayer(path string) (*audio.Player, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	ctx := AudioContext()
	clean := strings.ToLower(cleanAssetPath(path))
	reader := bytes.NewReader(b)

	if strings.HasSuffix(clean, ".wav") {
		stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decode wav %q: %w", path, err)
		}
		return ctx.NewPlayer(stream)
	}

	// Fallback for already-decoded PCM assets in Ebiten's native format.
	return ctx.NewPlayerFromBytes(b), nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
