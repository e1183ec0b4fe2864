package player

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ProbeDuration asks ffprobe for the container duration of file, in seconds.
func ProbeDuration(ctx context.Context, ffprobePath, file string) (float64, error) {
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		file,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", file, err)
	}
	return parseDuration(string(output))
}

func parseDuration(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	if d <= 0 || sanitize(d) != d {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}
