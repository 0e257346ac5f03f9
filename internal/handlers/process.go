package handlers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nick0der/video-summarizer/internal/job"
	"github.com/nick0der/video-summarizer/internal/media"
	"github.com/nick0der/video-summarizer/internal/summarize"
)

// ProcessHandler accepts a video upload and starts the pipeline
type ProcessHandler struct {
	controller *job.Controller
	tempDir    string
	maxSizeMB  int
	log        *logrus.Logger
}

// NewProcessHandler creates a new process handler
func NewProcessHandler(controller *job.Controller, tempDir string, maxSizeMB int, log *logrus.Logger) *ProcessHandler {
	return &ProcessHandler{
		controller: controller,
		tempDir:    tempDir,
		maxSizeMB:  maxSizeMB,
		log:        log,
	}
}

// Handle processes the upload request. Validation failures are rejected
// synchronously and never enter the pipeline.
func (h *ProcessHandler) Handle(c *fiber.Ctx) error {
	file, err := c.FormFile("video")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "No video file uploaded",
		})
	}

	apiKey := c.FormValue("api_key")
	if apiKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Missing API key",
		})
	}

	length, err := summarize.ParseLength(c.FormValue("summary_length"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	// The format field is optional; absent means executive summary.
	format, err := summarize.ParseFormat(c.FormValue("summary_format"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	maxSize := int64(h.maxSizeMB) * 1024 * 1024
	if file.Size > maxSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   fmt.Sprintf("File too large (max %dMB)", h.maxSizeMB),
		})
	}

	if !media.IsVideoFile(file.Filename) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Unsupported video format",
		})
	}

	extension := filepath.Ext(file.Filename)
	tempPath := filepath.Join(h.tempDir, fmt.Sprintf("%s%s", uuid.New().String(), extension))

	if err := c.SaveFile(file, tempPath); err != nil {
		h.log.WithError(err).Error("Failed to save uploaded file")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to save file",
		})
	}

	err = h.controller.Start(job.Request{
		VideoPath: tempPath,
		APIKey:    apiKey,
		Length:    length,
		Format:    format,
	})
	if err != nil {
		// The upload only exists for this rejected submission.
		if rmErr := os.Remove(tempPath); rmErr != nil {
			h.log.WithError(rmErr).Warnf("Failed to remove rejected upload %s", tempPath)
		}

		status := fiber.StatusBadRequest
		if errors.Is(err, job.ErrJobInProgress) {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
