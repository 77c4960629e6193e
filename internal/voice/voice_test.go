package voice

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestNewSpeakerDisabled(t *testing.T) {
	if _, ok := NewSpeaker(false, "espeak", nil).(NullSpeaker); !ok {
		t.Error("disabled voice should return NullSpeaker")
	}
	if _, ok := NewSpeaker(true, "", nil).(NullSpeaker); !ok {
		t.Error("empty command should return NullSpeaker")
	}
}

func TestNullSpeakerNoError(t *testing.T) {
	if err := (NullSpeaker{}).Speak(context.Background(), "hello"); err != nil {
		t.Fatalf("Speak: %v", err)
	}
}

func TestCommandSpeakerRunsCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script helper not available on windows")
	}
	dir := t.TempDir()
	out := filepath.Join(dir, "spoken.txt")
	script := filepath.Join(dir, "fake-tts")
	content := "#!/bin/sh\nprintf '%s' \"$2\" > " + out + "\n"
	if err := os.WriteFile(script, []byte(content), 0o755); err != nil {
		t.Fatal(err)
	}

	s := NewSpeaker(true, script, []string{"-v"})
	if err := s.Speak(context.Background(), "hello there"); err != nil {
		t.Fatalf("Speak: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading capture file: %v", err)
	}
	if string(got) != "hello there" {
		t.Errorf("spoken text = %q, want %q", got, "hello there")
	}
}

func TestCommandSpeakerMissingBinary(t *testing.T) {
	s := &CommandSpeaker{Command: "/nonexistent/tts-binary"}
	err := s.Speak(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if !strings.Contains(err.Error(), "voice:") {
		t.Errorf("error missing package prefix: %v", err)
	}
}

func TestCommandSpeakerSkipsEmptyText(t *testing.T) {
	s := &CommandSpeaker{Command: "/nonexistent/tts-binary"}
	if err := s.Speak(context.Background(), ""); err != nil {
		t.Fatalf("empty text should be a no-op, got %v", err)
	}
}
