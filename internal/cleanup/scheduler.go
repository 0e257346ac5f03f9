package cleanup

import (
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Scheduler periodically removes stale media files left in the temp
// directory. The pipeline deletes its own files at end of run; this is the
// safety net for files orphaned by a crash or an abandoned upload.
type Scheduler struct {
	tempDir         string
	intervalMinutes int
	maxAgeHours     int
	stopChan        chan struct{}
	log             *logrus.Logger
}

// NewScheduler creates a new cleanup scheduler
func NewScheduler(tempDir string, intervalMinutes, maxAgeHours int, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		tempDir:         tempDir,
		intervalMinutes: intervalMinutes,
		maxAgeHours:     maxAgeHours,
		stopChan:        make(chan struct{}),
		log:             log,
	}
}

// Start begins the cleanup scheduler
func (s *Scheduler) Start() {
	s.log.Info("Running initial temp file cleanup...")
	s.cleanOldFiles()

	ticker := time.NewTicker(time.Duration(s.intervalMinutes) * time.Minute)

	go func() {
		for {
			select {
			case <-ticker.C:
				s.cleanOldFiles()
			case <-s.stopChan:
				ticker.Stop()
				return
			}
		}
	}()

	s.log.Infof("Cleanup scheduler started (interval: %dm, max age: %dh)",
		s.intervalMinutes, s.maxAgeHours)
}

// Stop stops the cleanup scheduler
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.log.Info("Cleanup scheduler stopped")
}

// cleanOldFiles removes files older than maxAgeHours from the temp directory
func (s *Scheduler) cleanOldFiles() {
	now := time.Now()
	maxAge := time.Duration(s.maxAgeHours) * time.Hour

	var deletedCount int

	err := filepath.Walk(s.tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip files we can't access
		}
		if info.IsDir() {
			return nil
		}

		age := now.Sub(info.ModTime())
		if age > maxAge {
			if err := os.Remove(path); err != nil {
				s.log.WithError(err).Warnf("Failed to delete old file %s", path)
			} else {
				deletedCount++
				s.log.Infof("Deleted old temp file: %s (age: %s)",
					filepath.Base(path), age.Round(time.Hour))
			}
		}

		return nil
	})

	if err != nil {
		s.log.WithError(err).Error("Error during cleanup")
	}

	if deletedCount > 0 {
		s.log.Infof("Cleanup complete: %d files deleted", deletedCount)
	}
}

// EnsureTempDirExists creates the temp directory if it doesn't exist
func EnsureTempDirExists(tempDir string) error {
	return os.MkdirAll(tempDir, 0755)
}
