package probe

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// missingValue is the literal an AppleScript-style bridge prints for an
// unset property.
const missingValue = "missing value"

// scriptPlayer drives a player through one-shot interpreter invocations
// (e.g. osascript) carrying a script string per property. The process
// blocks for the duration of the call; cancellation comes from ctx.
type scriptPlayer struct {
	command string
	args    []string
	app     string
	scripts map[string]string
}

// NewScript creates the scripting bridge. scripts maps "running",
// "playing", the Prop names, and "play" to script strings. The play
// script may contain {title} and {artist} placeholders.
func NewScript(command string, args []string, app string, scripts map[string]string) Player {
	return &scriptPlayer{
		command: command,
		args:    args,
		app:     app,
		scripts: scripts,
	}
}

func (s *scriptPlayer) Name() string {
	if s.app != "" {
		return s.app
	}
	return "script"
}

func (s *scriptPlayer) Running(ctx context.Context) bool {
	out, err := s.run(ctx, "running")
	return err == nil && isTruthy(out)
}

func (s *scriptPlayer) Playing(ctx context.Context) (bool, error) {
	out, err := s.run(ctx, "playing")
	if err != nil {
		return false, err
	}
	return isTruthy(out) || out == "playing", nil
}

func (s *scriptPlayer) Get(ctx context.Context, prop Prop) (string, error) {
	return s.run(ctx, string(prop))
}

func (s *scriptPlayer) PlayTrack(ctx context.Context, title, artist string) error {
	script, ok := s.scripts["play"]
	if !ok {
		return fmt.Errorf("player %s has no play script", s.Name())
	}
	script = strings.ReplaceAll(script, "{title}", title)
	script = strings.ReplaceAll(script, "{artist}", artist)
	_, err := s.exec(ctx, script)
	return err
}

// run executes the script configured for key. An unconfigured key
// degrades to an empty answer.
func (s *scriptPlayer) run(ctx context.Context, key string) (string, error) {
	script, ok := s.scripts[key]
	if !ok {
		return "", nil
	}
	return s.exec(ctx, script)
}

func (s *scriptPlayer) exec(ctx context.Context, script string) (string, error) {
	args := append(append([]string{}, s.args...), script)
	out, err := exec.CommandContext(ctx, s.command, args...).Output()
	if err != nil {
		return "", err
	}

	result := strings.TrimSpace(string(out))
	if result == missingValue {
		result = ""
	}
	return result, nil
}

func isTruthy(s string) bool {
	return s == "true" || s == "yes" || s == "1"
}
