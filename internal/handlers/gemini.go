package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/nick0der/video-summarizer/internal/summarize"
)

// SummaryService is the slice of the Gemini client these handlers need.
type SummaryService interface {
	Regenerate(ctx context.Context, apiKey, transcript string, length summarize.Length, format summarize.Format) (string, error)
	TestKey(ctx context.Context, apiKey string) (string, error)
}

// GeminiHandler serves the standalone key-test and regenerate operations.
// Neither touches job state.
type GeminiHandler struct {
	service SummaryService
	log     *logrus.Logger
}

// NewGeminiHandler creates a new gemini handler
func NewGeminiHandler(service SummaryService, log *logrus.Logger) *GeminiHandler {
	return &GeminiHandler{service: service, log: log}
}

type testKeyRequest struct {
	APIKey string `json:"api_key"`
}

// TestKey sends the fixed probe prompt and reports the service's response.
func (h *GeminiHandler) TestKey(c *fiber.Ctx) error {
	var req testKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if req.APIKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Missing API key",
		})
	}

	response, err := h.service.TestKey(c.Context(), req.APIKey)
	if err != nil {
		// Service rejection reasons are passed through verbatim.
		return c.JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"response": response,
	})
}

type regenerateRequest struct {
	APIKey        string `json:"api_key"`
	SummaryLength string `json:"summary_length"`
	SummaryFormat string `json:"summary_format"`
	Transcript    string `json:"transcript"`
}

// Regenerate builds a fresh summary from an existing transcript, bypassing
// the pipeline.
func (h *GeminiHandler) Regenerate(c *fiber.Ctx) error {
	var req regenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if req.APIKey == "" || req.Transcript == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Missing API key or transcript",
		})
	}

	length, err := summarize.ParseLength(req.SummaryLength)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	format, err := summarize.ParseFormat(req.SummaryFormat)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	summary, err := h.service.Regenerate(c.Context(), req.APIKey, req.Transcript, length, format)
	if err != nil {
		h.log.WithError(err).Warn("Summary regeneration failed")
		return c.JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"summary": summary,
	})
}
