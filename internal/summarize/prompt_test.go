package summarize

import (
	"strings"
	"testing"
)

func TestBuildPromptDeterministic(t *testing.T) {
	transcript := "We discussed the release schedule and hiring plans."

	first, err := BuildPrompt(transcript, LengthMedium, FormatStructured)
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}

	for i := 0; i < 5; i++ {
		again, err := BuildPrompt(transcript, LengthMedium, FormatStructured)
		if err != nil {
			t.Fatalf("BuildPrompt() error = %v", err)
		}
		if again != first {
			t.Fatal("BuildPrompt is not deterministic for identical inputs")
		}
	}
}

func TestBuildPromptContent(t *testing.T) {
	transcript := "The migration is complete and the old cluster is drained."

	prompt, err := BuildPrompt(transcript, LengthShort, FormatNarrative)
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}

	checks := []string{
		"Format (format 1 or format 2 or format 3): format 3",
		"Length of the summary (very short, short, medium, long): short",
		"Format guidelines:",
		"Length guidelines:",
		"EXAMPLE Format 1:",
		"EXAMPLE Format 2:",
		"EXAMPLE Format 3:",
		"Talking points:",
	}
	for _, want := range checks {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if !strings.HasSuffix(prompt, transcript) {
		t.Error("transcript must appear verbatim at the end of the prompt")
	}
}

func TestBuildPromptDefaultFormat(t *testing.T) {
	prompt, err := BuildPrompt("hello", LengthVeryShort, "")
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}

	if !strings.Contains(prompt, "Format (format 1 or format 2 or format 3): format 1") {
		t.Error("unset format should resolve to format 1")
	}
}

func TestBuildPromptEmptyTranscript(t *testing.T) {
	for _, transcript := range []string{"", "   ", "\n\t"} {
		if _, err := BuildPrompt(transcript, LengthShort, FormatExecutive); err == nil {
			t.Errorf("BuildPrompt(%q) should reject empty transcript", transcript)
		}
	}
}

func TestBuildPromptInvalidSettings(t *testing.T) {
	if _, err := BuildPrompt("hello", "gigantic", FormatExecutive); err == nil {
		t.Error("invalid length should be rejected")
	}
	if _, err := BuildPrompt("hello", LengthShort, "format 9"); err == nil {
		t.Error("invalid format should be rejected")
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in      string
		want    Length
		wantErr bool
	}{
		{"very short", LengthVeryShort, false},
		{"Short", LengthShort, false},
		{" medium ", LengthMedium, false},
		{"LONG", LengthLong, false},
		{"", "", true},
		{"huge", "", true},
	}

	for _, tt := range tests {
		got, err := ParseLength(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLength(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLength(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"format 1", FormatExecutive, false},
		{"Format 2", FormatStructured, false},
		{"format 3", FormatNarrative, false},
		{"", FormatExecutive, false},
		{"format 4", "", true},
		{"bullets", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
