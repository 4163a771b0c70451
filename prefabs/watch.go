package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind tells reloaders what kind of prefab file changed.
type ChangeKind int

const (
	ChangeSpec ChangeKind = iota
	ChangeScript
)

// Change is a debounced notification for one prefab file.
type Change struct {
	// Name is the prefab-relative name, e.g. "candle_red.yaml" or
	// "scripts/level.tengo".
	Name string
	Kind ChangeKind
}

// Watcher forwards edits of prefab specs and scripts on disk. Consumers drain
// Events from the game loop; the watcher goroutine never touches game state.
type Watcher struct {
	watcher *fsnotify.Watcher
	root    string
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches root and its scripts directory when present.
func NewWatcher(root string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := w.Add(root); err != nil {
		_ = w.Close()
		return nil, err
	}
	_ = w.Add(filepath.Join(root, "scripts"))

	watcher := &Watcher{
		watcher: w,
		root:    root,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

// Poll returns the next pending change without blocking.
func (w *Watcher) Poll() (Change, bool) {
	select {
	case c, ok := <-w.Events:
		return c, ok
	default:
		return Change{}, false
	}
}

func (w *Watcher) run() {
	defer close(w.done)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			var kind ChangeKind
			switch {
			case isSpecFile(event.Name):
				kind = ChangeSpec
			case isScriptFile(event.Name):
				kind = ChangeScript
			default:
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now
			change := Change{Name: w.relative(event.Name), Kind: kind}
			select {
			case w.Events <- change:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) relative(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".tengo"
}
