package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nick0der/video-summarizer/pkg/executor"
)

// Whisper wraps the OpenAI Whisper CLI for speech-to-text.
type Whisper struct {
	binary   string
	model    string
	language string
	threads  int
	exec     executor.Executor
	tempDir  string
}

// NewWhisper creates a transcriber using the given whisper binary and model.
func NewWhisper(binary, model, language string, threads int, exec executor.Executor, tempDir string) *Whisper {
	return &Whisper{
		binary:   binary,
		model:    model,
		language: language,
		threads:  threads,
		exec:     exec,
		tempDir:  tempDir,
	}
}

// Transcribe processes an audio file and returns the transcript text.
func (w *Whisper) Transcribe(ctx context.Context, audioPath string) (string, error) {
	outDir, err := os.MkdirTemp(w.tempDir, "whisper-*")
	if err != nil {
		return "", fmt.Errorf("create whisper output dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	absAudioPath, err := filepath.Abs(audioPath)
	if err != nil {
		return "", fmt.Errorf("resolve audio path: %w", err)
	}

	args := []string{
		absAudioPath,
		"--model", w.model,
		"--output_dir", outDir,
		"--output_format", "txt",
		"--language", w.language,
		"--threads", strconv.Itoa(w.threads),
		"--fp16", "False", // CPU compatibility
	}

	if _, err := w.exec.Execute(ctx, w.binary, args...); err != nil {
		return "", fmt.Errorf("whisper transcription failed: %w", err)
	}

	// Whisper writes <audio basename>.txt into the output directory.
	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	txtPath := filepath.Join(outDir, baseName+".txt")

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("transcription produced no text")
	}

	return text, nil
}
