package transcribe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeExec mimics the whisper CLI by writing a transcript file into the
// directory passed via --output_dir.
type fakeExec struct {
	execErr  error
	text     string
	lastArgs []string
}

func (f *fakeExec) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.lastArgs = args
	if f.execErr != nil {
		return "", f.execErr
	}

	var outDir string
	for i, arg := range args {
		if arg == "--output_dir" && i+1 < len(args) {
			outDir = args[i+1]
		}
	}
	if outDir == "" {
		return "", errors.New("no --output_dir argument")
	}

	base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	return "", os.WriteFile(filepath.Join(outDir, base+".txt"), []byte(f.text), 0644)
}

func (f *fakeExec) LookPath(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

func TestTranscribe(t *testing.T) {
	exec := &fakeExec{text: " The quarterly review covered three topics.\n"}
	w := NewWhisper("whisper", "base", "en", 4, exec, t.TempDir())

	text, err := w.Transcribe(context.Background(), "audio_abc.mp3")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}

	if text != "The quarterly review covered three topics." {
		t.Errorf("text = %q, want trimmed transcript", text)
	}

	joined := strings.Join(exec.lastArgs, " ")
	for _, want := range []string{"--model base", "--language en", "--output_format txt", "--threads 4"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args %q missing %q", joined, want)
		}
	}
}

func TestTranscribeCommandFailure(t *testing.T) {
	exec := &fakeExec{execErr: errors.New("model file not found")}
	w := NewWhisper("whisper", "base", "en", 4, exec, t.TempDir())

	_, err := w.Transcribe(context.Background(), "audio.mp3")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "model file not found") {
		t.Errorf("error %q should carry tool output", err)
	}
}

func TestTranscribeEmptyOutput(t *testing.T) {
	exec := &fakeExec{text: "   \n"}
	w := NewWhisper("whisper", "base", "en", 4, exec, t.TempDir())

	_, err := w.Transcribe(context.Background(), "audio.mp3")
	if err == nil {
		t.Fatal("expected error for empty transcript")
	}
}
