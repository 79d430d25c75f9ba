package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileWatcher watches toolpath files and calls back once a burst of
// writes has settled
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	log       *zap.Logger
	mu        sync.Mutex
	callbacks map[string]func(string)
	debounce  time.Duration
	timers    map[string]*time.Timer
	// generations counts the changes seen per file; a firing timer whose
	// generation is behind has been superseded.
	generations map[string]uint64
	// running serializes callbacks.
	running sync.Mutex
	done    chan struct{}
}

// NewFileWatcher creates a new file watcher. A nil logger disables logging.
func NewFileWatcher(debounce time.Duration, log *zap.Logger) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &FileWatcher{
		watcher:     watcher,
		log:         log,
		callbacks:   make(map[string]func(string)),
		debounce:    debounce,
		timers:      make(map[string]*time.Timer),
		generations: make(map[string]uint64),
		done:        make(chan struct{}),
	}, nil
}

// Watch registers callback for each file. Slicers usually replace the
// output file instead of writing it in place, so the parent directory is
// watched and events are filtered by name.
func (fw *FileWatcher) Watch(files []string, callback func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}

		if err := fw.watcher.Add(filepath.Dir(absPath)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", absPath, err)
		}

		fw.callbacks[absPath] = callback
		fw.log.Debug("watching file", zap.String("path", absPath))
	}

	return nil
}

// Start begins watching for file changes
func (fw *FileWatcher) Start() {
	go func() {
		defer close(fw.done)
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}

				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					fw.handleFileChange(event.Name)
				}

			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				fw.log.Warn("watcher error", zap.Error(err))
			}
		}
	}()
}

// handleFileChange restarts the debounce timer of a watched file
func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	callback, exists := fw.callbacks[filePath]
	if !exists {
		return
	}

	if timer, exists := fw.timers[filePath]; exists {
		timer.Stop()
	}

	fw.generations[filePath]++
	generation := fw.generations[filePath]
	fw.timers[filePath] = time.AfterFunc(fw.debounce, func() {
		fw.fire(filePath, generation, callback)
	})
}

// fire runs callback unless a newer change to filePath has arrived since
// its timer was set. Callbacks never overlap, so results reach the caller
// in the order the changes happened.
func (fw *FileWatcher) fire(filePath string, generation uint64, callback func(string)) {
	fw.running.Lock()
	defer fw.running.Unlock()

	fw.mu.Lock()
	current := fw.generations[filePath] == generation
	fw.mu.Unlock()
	if !current {
		fw.log.Debug("change superseded", zap.String("path", filePath))
		return
	}

	fw.log.Debug("file changed", zap.String("path", filePath))
	callback(filePath)
}

// Close stops the watcher and pending callbacks
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	for _, timer := range fw.timers {
		timer.Stop()
	}
	fw.mu.Unlock()

	return fw.watcher.Close()
}

// Done is closed once the event loop started by Start has exited
func (fw *FileWatcher) Done() <-chan struct{} {
	return fw.done
}
