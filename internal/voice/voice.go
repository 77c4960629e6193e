// Package voice provides text-to-speech output via an external command.
package voice

import (
	"context"
	"fmt"
	"os/exec"
)

// Speaker turns assistant replies into audible speech.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// NullSpeaker discards all speech requests. Used when voice output is
// disabled in config.
type NullSpeaker struct{}

func (NullSpeaker) Speak(context.Context, string) error { return nil }

// CommandSpeaker shells out to a TTS binary (espeak, say, festival)
// passing the text as the final argument.
type CommandSpeaker struct {
	Command string
	Args    []string
}

// NewSpeaker returns a CommandSpeaker when enabled and a command is set,
// otherwise a NullSpeaker.
func NewSpeaker(enabled bool, command string, args []string) Speaker {
	if !enabled || command == "" {
		return NullSpeaker{}
	}
	return &CommandSpeaker{Command: command, Args: args}
}

func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	args := append(append([]string{}, s.Args...), text)
	cmd := exec.CommandContext(ctx, s.Command, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("voice: %s: %w", s.Command, err)
	}
	return nil
}
