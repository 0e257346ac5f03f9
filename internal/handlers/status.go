package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nick0der/video-summarizer/internal/job"
)

// StatusHandler serves read-only views of the current job state
type StatusHandler struct {
	controller *job.Controller
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(controller *job.Controller) *StatusHandler {
	return &StatusHandler{controller: controller}
}

// Progress reports the polling view: status, checkpoint progress, message.
func (h *StatusHandler) Progress(c *fiber.Ctx) error {
	s := h.controller.Snapshot()
	return c.JSON(fiber.Map{
		"status":   s.Status,
		"progress": s.Progress,
		"message":  s.Message,
	})
}

// Results returns the transcript and summary. Both are empty strings until
// the corresponding stage has completed.
func (h *StatusHandler) Results(c *fiber.Ctx) error {
	s := h.controller.Snapshot()
	return c.JSON(fiber.Map{
		"transcript": s.Transcript,
		"summary":    s.Summary,
	})
}

// DownloadTranscript serves the current transcript as a text attachment.
func (h *StatusHandler) DownloadTranscript(c *fiber.Ctx) error {
	return h.download(c, "transcript.txt", h.controller.Snapshot().Transcript)
}

// DownloadSummary serves the current summary as a text attachment.
func (h *StatusHandler) DownloadSummary(c *fiber.Ctx) error {
	return h.download(c, "summary.txt", h.controller.Snapshot().Summary)
}

func (h *StatusHandler) download(c *fiber.Ctx, filename, text string) error {
	if text == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Nothing to download yet",
		})
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendString(text)
}
