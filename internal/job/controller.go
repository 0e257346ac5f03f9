package job

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/nick0der/video-summarizer/internal/summarize"
)

// ErrJobInProgress is returned when a submission arrives while another job
// is still processing. The in-flight job is never superseded.
var ErrJobInProgress = errors.New("a job is already being processed")

// Extractor is the audio-extraction tool boundary.
type Extractor interface {
	Check(ctx context.Context) error
	ExtractAudio(ctx context.Context, videoPath string) (string, error)
}

// Transcriber is the speech-to-text boundary.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Summarizer is the generative-language service boundary.
type Summarizer interface {
	Summarize(ctx context.Context, apiKey, prompt string) (string, error)
}

// Request describes one job submission.
type Request struct {
	VideoPath string
	APIKey    string
	Length    summarize.Length
	Format    summarize.Format
}

// Controller owns the job slot and runs the pipeline for accepted
// submissions on a single detached goroutine.
type Controller struct {
	tracker     *Tracker
	extractor   Extractor
	transcriber Transcriber
	summarizer  Summarizer
	log         *logrus.Logger
}

// NewController creates a controller around the given stage adapters.
func NewController(extractor Extractor, transcriber Transcriber, summarizer Summarizer, log *logrus.Logger) *Controller {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{
		tracker:     NewTracker(),
		extractor:   extractor,
		transcriber: transcriber,
		summarizer:  summarizer,
		log:         log,
	}
}

// Snapshot returns the current job state.
func (c *Controller) Snapshot() State {
	return c.tracker.Snapshot()
}

// Start validates the request and, if the slot is free, kicks off the
// pipeline in the background. It returns before any stage has run.
func (c *Controller) Start(req Request) error {
	if req.VideoPath == "" {
		return fmt.Errorf("missing video file")
	}
	if req.APIKey == "" {
		return fmt.Errorf("missing API key")
	}
	if _, err := summarize.ParseLength(string(req.Length)); err != nil {
		return err
	}
	if req.Format != "" {
		if _, err := summarize.ParseFormat(string(req.Format)); err != nil {
			return err
		}
	}

	if !c.tracker.begin() {
		return ErrJobInProgress
	}

	c.log.WithField("video", req.VideoPath).Info("Job accepted, processing started")
	go c.run(req)
	return nil
}

// run executes the pipeline stages in strict order. Each stage's state write
// is visible before the next stage begins.
func (c *Controller) run(req Request) {
	ctx := context.Background()
	var audioPath string

	defer func() {
		if r := recover(); r != nil {
			c.log.Errorf("PANIC in pipeline: %v\n%s", r, string(debug.Stack()))
			c.tracker.fail(fmt.Sprintf("Error: internal failure: %v", r))
		}
		// Temporary media is removed on every outcome. Failures here are
		// logged, never escalated: the job's status already tells the truth.
		c.removeFile(req.VideoPath)
		c.removeFile(audioPath)
	}()

	if err := c.extractor.Check(ctx); err != nil {
		c.log.WithError(err).Error("FFmpeg preflight failed")
		c.tracker.fail(fmt.Sprintf("FFmpeg not available: %v", err))
		return
	}

	c.tracker.stage(ProgressExtracting, "Converting video to audio...")
	audioPath, err := c.extractor.ExtractAudio(ctx, req.VideoPath)
	if err != nil {
		c.log.WithError(err).Error("Audio extraction failed")
		c.tracker.fail(fmt.Sprintf("Error: %v", err))
		return
	}

	c.tracker.stage(ProgressTranscribing, "Transcribing audio...")
	transcript, err := c.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		c.log.WithError(err).Error("Transcription failed")
		c.tracker.fail(fmt.Sprintf("Error: %v", err))
		return
	}
	c.tracker.setTranscript(transcript)
	c.log.Infof("Transcription complete (%d characters)", len(transcript))

	c.tracker.stage(ProgressSummarizing, "Generating summary...")
	prompt, err := summarize.BuildPrompt(transcript, req.Length, req.Format)
	if err != nil {
		c.tracker.fail(fmt.Sprintf("Error: %v", err))
		return
	}
	summary, err := c.summarizer.Summarize(ctx, req.APIKey, prompt)
	if err != nil {
		c.log.WithError(err).Error("Summarization failed")
		c.tracker.fail(fmt.Sprintf("Error: %v", err))
		return
	}
	c.tracker.setSummary(summary)
	c.log.Infof("Summary generated (%d characters)", len(summary))

	c.tracker.complete()
	c.log.Info("Processing completed successfully")
}

func (c *Controller) removeFile(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		c.log.WithError(err).Warnf("Failed to cleanup temp file %s", path)
	}
}
