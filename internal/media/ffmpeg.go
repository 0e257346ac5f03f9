package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nick0der/video-summarizer/pkg/executor"
)

// FFmpeg invokes the ffmpeg binary to pull the audio track out of a video.
type FFmpeg struct {
	binary       string
	exec         executor.Executor
	tempDir      string
	timeout      time.Duration
	checkTimeout time.Duration
}

// NewFFmpeg creates an extractor writing audio files into tempDir.
func NewFFmpeg(binary string, exec executor.Executor, tempDir string, timeout, checkTimeout time.Duration) *FFmpeg {
	return &FFmpeg{
		binary:       binary,
		exec:         exec,
		tempDir:      tempDir,
		timeout:      timeout,
		checkTimeout: checkTimeout,
	}
}

// Check verifies the ffmpeg binary is reachable and responds to -version.
func (f *FFmpeg) Check(ctx context.Context) error {
	if _, err := f.exec.LookPath(f.binary); err != nil {
		return fmt.Errorf("ffmpeg not found: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.checkTimeout)
	defer cancel()

	if _, err := f.exec.Execute(ctx, f.binary, "-version"); err != nil {
		return fmt.Errorf("ffmpeg check failed: %w", err)
	}
	return nil
}

// ExtractAudio converts the video's audio track to a 16kHz MP3 file.
// The argument template is fixed: video stream dropped, mp3 codec, 16kHz.
func (f *FFmpeg) ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	audioPath := filepath.Join(f.tempDir, fmt.Sprintf("audio_%s.mp3", uuid.New().String()))

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	args := []string{
		"-y",
		"-i", videoPath,
		"-vn", // No video
		"-acodec", "mp3",
		"-ar", "16000", // 16kHz sample rate
		audioPath,
	}

	if _, err := f.exec.Execute(ctx, f.binary, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	// A zero exit code is not proof the file landed on disk.
	if _, err := os.Stat(audioPath); err != nil {
		return "", fmt.Errorf("audio file was not created: %s", audioPath)
	}

	return audioPath, nil
}

// IsVideoFile checks if the file has a supported video extension
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	supportedFormats := []string{".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v", ".flv"}

	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}
	return false
}
