package deps

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  ", Optional: true},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Path != present {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary to be unavailable with detail, got %#v", results[1])
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Detail != "command not configured" {
		t.Fatalf("unexpected detail for blank command: %q", results[2].Detail)
	}
}

func TestCheckFFmpegReportsVersion(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stub")
	}
	binDir := t.TempDir()
	stub := filepath.Join(binDir, "ffmpeg")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	setHelperCommand(t, "version")

	status := CheckFFmpeg(context.Background(), stub)
	if !status.Available {
		t.Fatalf("expected ffmpeg to be available, got %#v", status)
	}
	if status.Version != "7.1.1" {
		t.Fatalf("expected version 7.1.1, got %q", status.Version)
	}
}

func TestCheckFFmpegVersionFailureStillAvailable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stub")
	}
	binDir := t.TempDir()
	stub := filepath.Join(binDir, "ffmpeg")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	setHelperCommand(t, "failure")

	status := CheckFFmpeg(context.Background(), stub)
	if !status.Available || status.Detail == "" {
		t.Fatalf("expected available with version failure detail, got %#v", status)
	}
}

func TestCheckFFmpegNotFound(t *testing.T) {
	t.Setenv("PATH", "")
	status := CheckFFmpeg(context.Background(), "")
	if status.Available {
		t.Fatal("expected ffmpeg resolution to fail")
	}
	if status.Command != "ffmpeg" || status.Detail == "" {
		t.Fatalf("unexpected status %#v", status)
	}
}

func TestParseVersion(t *testing.T) {
	for input, want := range map[string]string{
		"ffmpeg version 7.1.1 Copyright (c) 2000-2025\nbuilt with gcc": "7.1.1",
		"ffmpeg version n6.0-37-g1a2b3c":                                "n6.0-37-g1a2b3c",
		"custom build":                                                  "custom build",
		"":                                                              "",
	} {
		if got := parseVersion([]byte(input)); got != want {
			t.Errorf("parseVersion(%q) = %q, want %q", input, got, want)
		}
	}
}

func setHelperCommand(t *testing.T, mode string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("DEPS_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	switch os.Getenv("DEPS_HELPER_MODE") {
	case "version":
		fmt.Println("ffmpeg version 7.1.1 Copyright (c) 2000-2025 the FFmpeg developers")
		fmt.Println("built with gcc 14.2.1")
		os.Exit(0)
	case "failure":
		os.Exit(1)
	default:
		os.Exit(0)
	}
}
