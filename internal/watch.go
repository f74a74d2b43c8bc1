package internal

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// StartWatching rewrites .java files in the given directories whenever they
// change, passing each result to onResult.
func (e *Engine) StartWatching(dirs []string, onResult func(Result)) error {
	if e.isWatching.Load() {
		return fmt.Errorf("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	e.watcher = watcher
	e.watchDirs = dirs
	e.onResult = onResult

	for _, dir := range e.watchDirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return e.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	e.isWatching.Store(true)
	go e.watchLoop()
	return nil
}

func (e *Engine) StopWatching() error {
	if !e.isWatching.Load() {
		log.Println("not watching")
		return nil
	}

	e.isWatching.Store(false)
	return e.watcher.Close()
}

func (e *Engine) watchLoop() {
	for e.isWatching.Load() {
		select {
		case event, ok := <-e.watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(event)
		case err, ok := <-e.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("error: %v", err)
		}
	}
}

func (e *Engine) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write == fsnotify.Write {
		if strings.HasSuffix(event.Name, ".java") {
			// wait for a while after file change to consider multiple changes as one
			time.Sleep(100 * time.Millisecond)
			result, err := e.Run(event.Name)
			if err != nil {
				log.Printf("error: %v", err)
				return
			}
			if e.onResult != nil {
				e.onResult(result)
			}
		}
	}
}
