// config_watcher.go - Live configuration reload for VidWall

/*
██╗   ██╗██╗██████╗ ██╗    ██╗ █████╗ ██╗     ██╗
██║   ██║██║██╔══██╗██║    ██║██╔══██╗██║     ██║
██║   ██║██║██║  ██║██║ █╗ ██║███████║██║     ██║
╚██╗ ██╔╝██║██║  ██║██║███╗██║██╔══██║██║     ██║
 ╚████╔╝ ██║██████╔╝╚███╔███╔╝██║  ██║███████╗███████╗
  ╚═══╝  ╚═╝╚═════╝  ╚═══╝╚═══╝╚═╝  ╚═╝╚══════╝╚══════╝

(c) 2025 - 2026 The VidWall Authors
https://github.com/vidwall/vidwall
License: GPLv3 or later
*/

package main

import (
	"log"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher reloads the configuration file on change and hands the
// fresh value to a handler. Only presentation tuning is applied live;
// structural changes (clip paths, window setup) need a restart. Changes
// are debounced because editors fire several events per save.
type ConfigWatcher struct {
	path     string
	debounce time.Duration
	onChange func(Config)

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	stop    chan struct{}
	done    chan struct{}
}

func NewConfigWatcher(path string, onChange func(Config)) *ConfigWatcher {
	return &ConfigWatcher{
		path:     path,
		debounce: 1500 * time.Millisecond,
		onChange: onChange,
	}
}

// Start begins watching. Returns an error only when the watch cannot be
// established; load failures after a change are logged and skipped so a
// half-saved file never kills the running wall.
func (w *ConfigWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(w.path); err != nil {
		watcher.Close()
		return err
	}
	w.watcher = watcher
	w.stop = make(chan struct{})
	w.done = make(chan struct{})
	go w.loop(watcher, w.stop, w.done)
	return nil
}

func (w *ConfigWatcher) loop(watcher *fsnotify.Watcher, stop, done chan struct{}) {
	defer close(done)
	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-stop:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("config watcher: %v", err)
		case <-timerC:
			cfg, err := LoadConfig(w.path)
			if err != nil {
				log.Printf("config reload skipped: %v", err)
				continue
			}
			if err := cfg.Validate(); err != nil {
				log.Printf("config reload skipped: %v", err)
				continue
			}
			w.onChange(cfg)
		}
	}
}

// Stop ends the watch. Idempotent.
func (w *ConfigWatcher) Stop() {
	w.mu.Lock()
	watcher, stop, done := w.watcher, w.stop, w.done
	w.watcher = nil
	w.stop = nil
	w.done = nil
	w.mu.Unlock()
	if watcher == nil {
		return
	}
	close(stop)
	watcher.Close()
	<-done
}
