package preflight

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"dubmux/internal/config"
	"dubmux/internal/testsupport"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	if r := CheckDirectoryAccess("Logs", dir); !r.Passed {
		t.Fatalf("expected writable temp dir to pass, got %+v", r)
	}
	missing := filepath.Join(dir, "missing")
	if r := CheckDirectoryAccess("Logs", missing); r.Passed || !strings.Contains(r.Detail, "does not exist") {
		t.Fatalf("unexpected result for missing dir %+v", r)
	}
	file := filepath.Join(dir, "file")
	testsupport.WriteFile(t, file, 1)
	if r := CheckDirectoryAccess("Logs", file); r.Passed || !strings.Contains(r.Detail, "not a directory") {
		t.Fatalf("unexpected result for file %+v", r)
	}
}

func TestCheckSourceLayout(t *testing.T) {
	source := testsupport.ReleaseTree(t,
		"Show - 01.mkv",
		"Show - 02.mkv",
		"Rus Sound/TeamX/01.mka",
		"Rus Sound/TeamY/01.mka",
		"Rus Sound/надписи/01.ass",
	)

	results := CheckSourceLayout(source, config.Default().Layout)
	byName := map[string]Result{}
	for _, r := range results {
		byName[r.Name] = r
	}

	if r := byName["Source directory"]; !r.Passed || !strings.Contains(r.Detail, "2 .mkv videos") {
		t.Fatalf("unexpected source result %+v", r)
	}
	if r := byName["Audio groups"]; !r.Passed || r.Detail != "Rus Sound: TeamX, TeamY" {
		t.Fatalf("unexpected audio result %+v", r)
	}
	if r := byName["Subtitle groups"]; r.Passed || !r.Optional {
		t.Fatalf("expected optional subtitle failure, got %+v", r)
	}
	if r := byName["Signs directory"]; !r.Passed {
		t.Fatalf("expected signs directory, got %+v", r)
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("optional checks must not fail the layout, got %+v", failed)
	}
}

func TestCheckSourceLayoutWithoutVideos(t *testing.T) {
	source := testsupport.ReleaseTree(t, "Rus Subs/SubTeam/01.ass")
	results := CheckSourceLayout(source, config.Default().Layout)
	if failed := Failed(results); len(failed) != 1 || failed[0].Name != "Source directory" {
		t.Fatalf("expected source failure, got %+v", failed)
	}

	missing := CheckSourceLayout(filepath.Join(source, "missing"), config.Default().Layout)
	if len(missing) != 1 || missing[0].Passed {
		t.Fatalf("expected single failing result for missing source, got %+v", missing)
	}
}

func TestRunAllReportsMissingFFmpeg(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithMuxerBinary(filepath.Join(t.TempDir(), "no-ffmpeg")))

	results := RunAll(context.Background(), cfg, "")
	if len(results) != 2 {
		t.Fatalf("expected ffmpeg and log dir checks, got %+v", results)
	}
	failed := Failed(results)
	if len(failed) != 1 || failed[0].Name != "FFmpeg" {
		t.Fatalf("expected only ffmpeg to fail, got %+v", failed)
	}
	if RunAll(context.Background(), nil, "") != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAllWithStubFFmpegAndSource(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs")
	}
	cfg := testsupport.NewConfig(t, testsupport.WithStubFFmpeg("#!/bin/sh\necho 'ffmpeg version 7.1-stub'\n"))
	source := testsupport.ReleaseTree(t, "Show - 01.mkv", "Rus Subs/SubTeam/01.ass")

	results := RunAll(context.Background(), cfg, source)
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("expected no required failures, got %+v", failed)
	}
	if !strings.Contains(results[0].Detail, "version 7.1-stub") {
		t.Fatalf("expected ffmpeg version in detail, got %q", results[0].Detail)
	}
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Name)
	}
	want := "FFmpeg,Log directory,Source directory,Audio groups,Subtitle groups,Signs directory"
	if got := strings.Join(names, ","); got != want {
		t.Fatalf("unexpected check order %s", got)
	}
}
