// Package watch restyles R sources as they change on disk.
package watch

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileWatcher monitors file system changes and triggers callbacks
type FileWatcher struct {
	watcher     *fsnotify.Watcher
	debouncer   *Debouncer
	ignoredDirs []string
	onChange    func([]string) error
	logger      *zap.Logger
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// NewFileWatcher creates a watcher that hands debounced batches of
// changed R files to onChange
func NewFileWatcher(ignoredDirs []string, logger *zap.Logger, onChange func([]string) error) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:     watcher,
		debouncer:   NewDebouncer(100 * time.Millisecond),
		ignoredDirs: ignoredDirs,
		onChange:    onChange,
		logger:      logger,
		stopChan:    make(chan struct{}),
	}

	fw.debouncer.SetCallback(func(files []string) {
		if err := fw.onChange(files); err != nil {
			fw.logger.Error("handling file changes", zap.Error(err))
		}
	})

	return fw, nil
}

// Start begins watching root and its subdirectories
func (fw *FileWatcher) Start(root string) error {
	dirs, err := fw.findDirectories(root)
	if err != nil {
		return fmt.Errorf("failed to find directories: %w", err)
	}

	for _, dir := range dirs {
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		fw.logger.Debug("watching directory", zap.String("dir", dir))
	}

	fw.wg.Add(1)
	go fw.watch()

	return nil
}

// Stop stops the file watcher
func (fw *FileWatcher) Stop() error {
	select {
	case <-fw.stopChan:
		return nil
	default:
		close(fw.stopChan)
	}

	fw.wg.Wait()
	fw.debouncer.Stop()
	return fw.watcher.Close()
}

// watch is the main event loop
func (fw *FileWatcher) watch() {
	defer fw.wg.Done()

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if fw.shouldIgnore(event.Name) {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				if isRFile(event.Name) {
					fw.logger.Debug("file changed", zap.String("file", event.Name))
					fw.debouncer.Add(event.Name)
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Error("watch error", zap.Error(err))

		case <-fw.stopChan:
			return
		}
	}
}

// findDirectories discovers all directories under root worth watching
func (fw *FileWatcher) findDirectories(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && fw.shouldIgnore(path) {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	return dirs, err
}

// shouldIgnore checks if a path should be ignored
func (fw *FileWatcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") && base != "." {
		return true
	}
	for _, dir := range fw.ignoredDirs {
		if base == dir {
			return true
		}
	}
	return false
}

// isRFile matches the sources the styler handles directly
func isRFile(path string) bool {
	if strings.EqualFold(filepath.Base(path), ".Rprofile") {
		return true
	}
	return strings.EqualFold(filepath.Ext(path), ".r")
}
