package watch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/nick0der/video-summarizer/internal/job"
	"github.com/nick0der/video-summarizer/internal/media"
	"github.com/nick0der/video-summarizer/internal/summarize"
)

// Watcher submits videos dropped into a directory as pipeline jobs, using a
// configured default API key and summary settings. Since only one job can be
// in flight, a drop that lands while the controller is busy is skipped and
// the file left in place for a later manual submission.
type Watcher struct {
	dir        string
	controller *job.Controller
	apiKey     string
	length     summarize.Length
	format     summarize.Format
	watcher    *fsnotify.Watcher
	log        *logrus.Logger
}

// New creates a watcher for the given directory.
func New(dir string, controller *job.Controller, apiKey string, length summarize.Length, format summarize.Format, log *logrus.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &Watcher{
		dir:        dir,
		controller: controller,
		apiKey:     apiKey,
		length:     length,
		format:     format,
		watcher:    watcher,
		log:        log,
	}, nil
}

// Start blocks, handling filesystem events until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.log.Infof("Drop-folder watcher started, monitoring: %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Drop-folder watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !media.IsVideoFile(event.Name) {
				w.log.Debugf("Ignoring non-video file: %s", event.Name)
				continue
			}

			w.log.Infof("New video detected: %s", event.Name)

			// Small delay to ensure file is fully written
			time.Sleep(500 * time.Millisecond)

			err := w.controller.Start(job.Request{
				VideoPath: event.Name,
				APIKey:    w.apiKey,
				Length:    w.length,
				Format:    w.format,
			})
			switch {
			case errors.Is(err, job.ErrJobInProgress):
				w.log.Warnf("Skipping %s: %v", event.Name, err)
			case err != nil:
				w.log.WithError(err).Errorf("Failed to submit %s", event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.WithError(err).Error("Watcher error")
		}
	}
}

// Stop closes the underlying filesystem watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}
