package content

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/admpub/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a content file whenever it changes and hands each valid
// site to apply. Structurally invalid edits are logged and never applied.
type Watcher struct {
	path        string
	watcher     *fsnotify.Watcher
	debounceDur time.Duration
	apply       func(*Site)

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher watches path. apply is called once per accepted reload and
// owns publishing the site, e.g. Store.Swap.
func NewWatcher(path string, apply func(*Site)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		path:        filepath.Clean(path),
		watcher:     watcher,
		debounceDur: 200 * time.Millisecond,
		apply:       apply,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start watches the file's directory, since editors often replace files
// rather than write them in place. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.running = true
	log.Infof("watching content file: %s", w.path)
	go w.run(ctx)
	return nil
}

func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.watcher.Close(); err != nil {
		log.Errorf("content watcher: %v", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounceDur)
			} else {
				timer.Reset(w.debounceDur)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("content watcher: %v", err)
		case <-fire:
			fire = nil
			w.reload(ctx)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	site, err := FileSource(w.path).Load(ctx)
	if err != nil {
		log.Warnf("content reload failed, keeping previous version: %v", err)
		return
	}
	if err := site.Validate(); err != nil {
		log.Warnf("content reload rejected, keeping previous version: %v", err)
		return
	}
	for _, problem := range site.Problems() {
		log.Warnf("content problem: %s", problem)
	}
	w.apply(site)
	log.Infof("content reloaded: %d posts, %d datasets", len(site.Posts), len(site.Datasets))
}
