package speech

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Player plays an audio file to completion or until the context is cancelled.
type Player interface {
	Play(ctx context.Context, path string) error
}

// ExecPlayer shells out to the platform audio player.
type ExecPlayer struct{}

var _ Player = ExecPlayer{}

func (ExecPlayer) Play(ctx context.Context, path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "afplay", path)
	case "windows":
		cmd = exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command",
			fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", path))
	default:
		if _, err := exec.LookPath("paplay"); err == nil {
			cmd = exec.CommandContext(ctx, "paplay", path)
		} else {
			cmd = exec.CommandContext(ctx, "aplay", "-q", path)
		}
	}
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("audio playback failed: %w", err)
	}
	return nil
}
