package handlers

import (
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	"github.com/nick0der/video-summarizer/internal/job"
)

// ProgressStreamHandler pushes job state snapshots over a WebSocket, an
// alternative to polling /progress.
type ProgressStreamHandler struct {
	controller *job.Controller
	interval   time.Duration
	log        *logrus.Logger
}

// NewProgressStreamHandler creates a new progress stream handler
func NewProgressStreamHandler(controller *job.Controller, log *logrus.Logger) *ProgressStreamHandler {
	return &ProgressStreamHandler{
		controller: controller,
		interval:   time.Second,
		log:        log,
	}
}

// Handle streams snapshots until the job reaches a terminal state or the
// client disconnects. Each message is a whole snapshot, never a partial one.
func (h *ProgressStreamHandler) Handle(c *websocket.Conn) {
	defer c.Close()

	h.log.Debug("Progress stream connected")

	var last job.State
	first := true

	for {
		s := h.controller.Snapshot()

		if first || s != last {
			if err := c.WriteJSON(s); err != nil {
				h.log.WithError(err).Debug("Progress stream write failed")
				return
			}
			last = s
			first = false
		}

		if s.Status == job.StatusComplete || s.Status == job.StatusError {
			h.log.Debug("Progress stream finished at terminal state")
			return
		}

		time.Sleep(h.interval)
	}
}
