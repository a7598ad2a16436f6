package deps

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"
)

var commandContext = exec.CommandContext

const versionTimeout = 5 * time.Second

// FFmpegRequirement describes the muxing binary.
func FFmpegRequirement(binary string) Requirement {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	return Requirement{
		Name:        "FFmpeg",
		Command:     binary,
		Description: "Merges dub audio and subtitles into the video container",
	}
}

// CheckFFmpeg resolves the ffmpeg binary and records its version banner.
// A binary that resolves but cannot report a version is still available;
// the failure is noted in Detail.
func CheckFFmpeg(ctx context.Context, binary string) Status {
	status := CheckBinaries([]Requirement{FFmpegRequirement(binary)})[0]
	if !status.Available {
		return status
	}

	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	output, err := commandContext(ctx, status.Path, "-hide_banner", "-version").Output() //nolint:gosec
	if err != nil {
		status.Detail = "version check failed: " + err.Error()
		return status
	}
	status.Version = parseVersion(output)
	return status
}

// parseVersion extracts the token after "ffmpeg version" on the first line.
func parseVersion(output []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	if !scanner.Scan() {
		return ""
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) >= 3 && strings.EqualFold(fields[1], "version") {
		return fields[2]
	}
	return strings.TrimSpace(scanner.Text())
}
