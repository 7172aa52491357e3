// Package watcher reports debounced changes of individual files. It watches
// the parent directory so that editors replacing a file are noticed too.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileWatcher watches files for changes and triggers callbacks
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	log       *zap.Logger
	mu        sync.Mutex
	callbacks map[string]func(string)
	dirs      map[string]int
	debounce  time.Duration
	timers    map[string]*time.Timer
	done      chan struct{}
	started   bool
	closed    bool
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
		watcher:   watcher,
		log:       log.Named("watcher"),
		callbacks: make(map[string]func(string)),
		dirs:      make(map[string]int),
		debounce:  debounce,
		timers:    make(map[string]*time.Timer),
		done:      make(chan struct{}),
	}, nil
}

// Watch starts watching the specified files
// callback will be called with the absolute path of a file after it changed
func (fw *FileWatcher) Watch(files []string, callback func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		if _, exists := fw.callbacks[absPath]; !exists {
			dir := filepath.Dir(absPath)
			if fw.dirs[dir] == 0 {
				if err := fw.watcher.Add(dir); err != nil {
					return fmt.Errorf("failed to watch %s: %w", dir, err)
				}
			}
			fw.dirs[dir]++
		}

		fw.callbacks[absPath] = callback
		fw.log.Debug("watching file", zap.String("path", absPath))
	}

	return nil
}

// Start begins watching for file changes
func (fw *FileWatcher) Start() {
	fw.mu.Lock()
	if fw.started || fw.closed {
		fw.mu.Unlock()
		return
	}
	fw.started = true
	fw.mu.Unlock()

	go func() {
		defer close(fw.done)
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}

				// Only trigger on write or create events; a rename onto the
				// path arrives as create
				if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
					fw.handleFileChange(filepath.Clean(event.Name))
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

// handleFileChange handles a file change event with debouncing
func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	callback, exists := fw.callbacks[filePath]
	if !exists || fw.closed {
		return
	}

	if timer, exists := fw.timers[filePath]; exists {
		timer.Stop()
	}

	fw.timers[filePath] = time.AfterFunc(fw.debounce, func() {
		fw.mu.Lock()
		closed := fw.closed
		fw.mu.Unlock()
		if closed {
			return
		}
		fw.log.Debug("file changed", zap.String("path", filePath))
		callback(filePath)
	})
}

// Close stops the watcher and waits for its goroutine to exit
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	if fw.closed {
		fw.mu.Unlock()
		return nil
	}
	fw.closed = true
	started := fw.started
	for _, timer := range fw.timers {
		timer.Stop()
	}
	fw.mu.Unlock()

	err := fw.watcher.Close()
	if started {
		<-fw.done
	}
	return err
}

// RemoveAll removes all watched files
func (fw *FileWatcher) RemoveAll() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for dir := range fw.dirs {
		if err := fw.watcher.Remove(dir); err != nil {
			return err
		}
	}
	for _, timer := range fw.timers {
		timer.Stop()
	}

	fw.callbacks = make(map[string]func(string))
	fw.dirs = make(map[string]int)
	fw.timers = make(map[string]*time.Timer)
	return nil
}
