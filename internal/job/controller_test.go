package job

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nick0der/video-summarizer/internal/summarize"
)

type fakeExtractor struct {
	checkErr   error
	extractErr error
	audioPath  string
	block      chan struct{} // when non-nil, ExtractAudio waits until closed
}

func (f *fakeExtractor) Check(ctx context.Context) error { return f.checkErr }

func (f *fakeExtractor) ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	if f.block != nil {
		<-f.block
	}
	if f.extractErr != nil {
		return "", f.extractErr
	}
	return f.audioPath, nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	return f.text, f.err
}

type fakeSummarizer struct {
	text string
	err  error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, apiKey, prompt string) (string, error) {
	return f.text, f.err
}

// writeTempMedia creates a throwaway file standing in for uploaded media.
func writeTempMedia(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("media"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// waitTerminal polls until the job leaves the processing state.
func waitTerminal(t *testing.T, c *Controller) State {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		s := c.Snapshot()
		if s.Status == StatusComplete || s.Status == StatusError {
			return s
		}
		select {
		case <-deadline:
			t.Fatalf("job did not reach a terminal state, stuck at %q", s.Status)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func validRequest(videoPath string) Request {
	return Request{
		VideoPath: videoPath,
		APIKey:    "test-key",
		Length:    summarize.LengthShort,
		Format:    summarize.FormatExecutive,
	}
}

func TestPipelineSuccess(t *testing.T) {
	videoPath := writeTempMedia(t, "meeting.mp4")
	audioPath := writeTempMedia(t, "audio.mp3")

	c := NewController(
		&fakeExtractor{audioPath: audioPath},
		&fakeTranscriber{text: "we shipped the release"},
		&fakeSummarizer{text: "Talking points:\n• Release shipped."},
		nil,
	)

	if err := c.Start(validRequest(videoPath)); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	s := waitTerminal(t, c)
	if s.Status != StatusComplete {
		t.Fatalf("Status = %q (%s), want complete", s.Status, s.Message)
	}
	if s.Progress != ProgressComplete {
		t.Errorf("Progress = %d, want 100", s.Progress)
	}
	if s.Transcript == "" || s.Summary == "" {
		t.Error("transcript and summary must be non-empty after success")
	}

	for _, path := range []string{videoPath, audioPath} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("temp file %s should be removed after run", path)
		}
	}
}

func TestPipelinePreflightFailure(t *testing.T) {
	videoPath := writeTempMedia(t, "meeting.mp4")

	c := NewController(
		&fakeExtractor{checkErr: errors.New("executable file not found")},
		&fakeTranscriber{},
		&fakeSummarizer{},
		nil,
	)

	if err := c.Start(validRequest(videoPath)); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	s := waitTerminal(t, c)
	if s.Status != StatusError {
		t.Fatalf("Status = %q, want error", s.Status)
	}
	if !strings.Contains(s.Message, "FFmpeg not available") {
		t.Errorf("Message = %q should name the preflight failure", s.Message)
	}
	if s.Transcript != "" || s.Summary != "" {
		t.Error("no results should be set when preflight fails")
	}
}

func TestPipelineExtractionFailure(t *testing.T) {
	videoPath := writeTempMedia(t, "meeting.mp4")

	c := NewController(
		&fakeExtractor{extractErr: errors.New("exit status 1: codec not found")},
		&fakeTranscriber{text: "never reached"},
		&fakeSummarizer{text: "never reached"},
		nil,
	)

	if err := c.Start(validRequest(videoPath)); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	s := waitTerminal(t, c)
	if s.Status != StatusError {
		t.Fatalf("Status = %q, want error", s.Status)
	}
	if s.Progress != ProgressIdle {
		t.Errorf("Progress = %d, want 0", s.Progress)
	}
	if !strings.Contains(s.Message, "codec not found") {
		t.Errorf("Message = %q should carry the tool's stderr", s.Message)
	}
	if s.Transcript != "" || s.Summary != "" {
		t.Error("extraction failure must leave both results empty")
	}

	if _, err := os.Stat(videoPath); !os.IsNotExist(err) {
		t.Error("uploaded video should be removed even on failure")
	}
}

func TestPipelineSummarizationFailure(t *testing.T) {
	videoPath := writeTempMedia(t, "meeting.mp4")
	audioPath := writeTempMedia(t, "audio.mp3")

	c := NewController(
		&fakeExtractor{audioPath: audioPath},
		&fakeTranscriber{text: "the transcript survives"},
		&fakeSummarizer{err: errors.New("API key not valid")},
		nil,
	)

	if err := c.Start(validRequest(videoPath)); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	s := waitTerminal(t, c)
	if s.Status != StatusError {
		t.Fatalf("Status = %q, want error", s.Status)
	}
	if s.Transcript != "the transcript survives" {
		t.Errorf("Transcript = %q, should be kept from the completed stage", s.Transcript)
	}
	if s.Summary != "" {
		t.Error("summary must stay empty when summarization fails")
	}
	if !strings.Contains(s.Message, "API key not valid") {
		t.Errorf("Message = %q should preserve the service error", s.Message)
	}
}

func TestStartRejectsWhileBusy(t *testing.T) {
	videoPath := writeTempMedia(t, "first.mp4")
	block := make(chan struct{})

	c := NewController(
		&fakeExtractor{audioPath: writeTempMedia(t, "audio.mp3"), block: block},
		&fakeTranscriber{text: "text"},
		&fakeSummarizer{text: "summary"},
		nil,
	)

	if err := c.Start(validRequest(videoPath)); err != nil {
		t.Fatalf("first Start() error = %v", err)
	}

	err := c.Start(validRequest(writeTempMedia(t, "second.mp4")))
	if !errors.Is(err, ErrJobInProgress) {
		t.Fatalf("second Start() error = %v, want ErrJobInProgress", err)
	}

	// The rejected submission must not have disturbed the in-flight run.
	if s := c.Snapshot(); s.Status != StatusProcessing {
		t.Errorf("Status = %q, first job should still be processing", s.Status)
	}

	close(block)
	if s := waitTerminal(t, c); s.Status != StatusComplete {
		t.Errorf("first job ended %q (%s), want complete", s.Status, s.Message)
	}
}

func TestStartValidation(t *testing.T) {
	c := NewController(&fakeExtractor{}, &fakeTranscriber{}, &fakeSummarizer{}, nil)

	tests := []struct {
		name string
		req  Request
	}{
		{"missing video", Request{APIKey: "k", Length: summarize.LengthShort}},
		{"missing api key", Request{VideoPath: "v.mp4", Length: summarize.LengthShort}},
		{"bad length", Request{VideoPath: "v.mp4", APIKey: "k", Length: "enormous"}},
		{"bad format", Request{VideoPath: "v.mp4", APIKey: "k", Length: summarize.LengthShort, Format: "format 7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.Start(tt.req); err == nil {
				t.Error("Start() should reject invalid request")
			}
		})
	}

	// Rejected submissions never enter the pipeline.
	if s := c.Snapshot(); s.Status != StatusReady {
		t.Errorf("Status = %q, validation failures must not touch state", s.Status)
	}
}
