// Package fspoll implements a primitive polling-based watcher for a
// single file.
package fspoll

import (
	"os"
	"time"
)

const DefaultInterval = 1 * time.Second

// Watcher polls one file for changes.
type Watcher struct {
	path     string
	state    os.FileInfo
	interval time.Duration
	closed   chan bool

	// event channels
	Change chan bool
	Error  chan error
}

// Watch polls the given file for changes with the given interval
// (DefaultInterval when zero). The file must exist when watching
// starts; its later disappearance is reported as an error.
func Watch(path string, interval time.Duration) (w *Watcher, err error) {
	if interval == 0 {
		interval = DefaultInterval
	}
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	w = &Watcher{
		path:     path,
		state:    fi,
		interval: interval,
		Change:   make(chan bool),
		Error:    make(chan error),
		closed:   make(chan bool),
	}
	go w.start()
	return w, nil
}

func (w *Watcher) start() {
	for {
		select {
		case <-time.After(w.interval):
		case <-w.closed:
			return
		}
		hasChange, err := w.check()
		switch {
		case err != nil:
			select {
			case w.Error <- err:
			case <-w.closed:
				return
			}
		case hasChange:
			select {
			case w.Change <- true:
			case <-w.closed:
				return
			}
		}
	}
}

func (w *Watcher) check() (hasChange bool, err error) {
	fi, err := os.Stat(w.path)
	if err != nil {
		return false, err
	}
	defer func() {
		w.state = fi
	}()
	if fi.Mode() != w.state.Mode() {
		return true, nil
	}
	if !fi.ModTime().Equal(w.state.ModTime()) {
		return true, nil
	}
	if fi.Size() != w.state.Size() {
		return true, nil
	}
	return false, nil
}

// Close stops the watcher.
func (w *Watcher) Close() {
	close(w.closed)
}
