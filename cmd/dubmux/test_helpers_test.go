package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"dubmux/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	sourceDir  string
	configPath string
	logDir     string
}

func setupCLITestEnv(t *testing.T, ffmpegScript string) *cliTestEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs")
	}

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	binary := filepath.Join(base, "bin", "ffmpeg")
	writeFile(t, binary, ffmpegScript, 0o755)

	env := &cliTestEnv{
		baseDir:    base,
		sourceDir:  filepath.Join(base, "Show"),
		configPath: filepath.Join(base, "config.toml"),
		logDir:     filepath.Join(base, "logs"),
	}
	content := fmt.Sprintf("[paths]\nlog_dir = %q\n\n[muxer]\nbinary = %q\n\n[logging]\nformat = \"json\"\n", env.logDir, binary)
	writeFile(t, env.configPath, content, 0o644)
	if err := os.MkdirAll(env.sourceDir, 0o755); err != nil {
		t.Fatalf("mkdir source: %v", err)
	}
	return env
}

func (e *cliTestEnv) addFiles(t *testing.T, rel ...string) {
	t.Helper()
	testsupport.AddFiles(t, e.sourceDir, rel...)
}

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

const (
	ffmpegSuccessScript = `#!/bin/sh
if [ "$1" = "-hide_banner" ]; then
  echo "ffmpeg version 7.1-test Copyright (c) the FFmpeg developers"
  exit 0
fi
for last; do :; done
echo merged > "$last"
`
	ffmpegFailureScript = `#!/bin/sh
if [ "$1" = "-hide_banner" ]; then
  echo "ffmpeg version 7.1-test"
  exit 0
fi
echo "Stream mapping failed" >&2
echo "01.mka: Invalid data found when processing input" >&2
exit 1
`
)
