package muxer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"dubmux/internal/media"
	"dubmux/internal/muxplan"
)

type capture struct {
	name string
	args []string
}

func setHelperCommand(t *testing.T, mode string) *capture {
	t.Helper()
	captured := &capture{}
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		captured.name = name
		captured.args = append([]string(nil), args...)
		helperArgs := append([]string{"-test.run=TestHelperProcess", "--"}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], helperArgs...)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("FFMPEG_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
	return captured
}

func testPlan(dir string) muxplan.Plan {
	return muxplan.Build(muxplan.Request{
		Video:  filepath.Join(dir, "Show - 05.mkv"),
		Audio:  []media.Asset{{Path: filepath.Join(dir, "05.mka"), Class: media.Audio, Key: "5", Group: "TeamX"}},
		Output: filepath.Join(dir, "out", "nested", "Show - 05.mkv"),
	})
}

func TestMuxRunsPlanArgs(t *testing.T) {
	captured := setHelperCommand(t, "success")
	dir := t.TempDir()
	plan := testPlan(dir)

	runner := New(WithBinary("/opt/ffmpeg/bin/ffmpeg"))
	if err := runner.Mux(context.Background(), plan); err != nil {
		t.Fatalf("Mux returned error: %v", err)
	}
	if captured.name != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("unexpected binary %q", captured.name)
	}
	if !reflect.DeepEqual(captured.args, plan.Args()) {
		t.Fatalf("args mismatch\n got: %q\nwant: %q", captured.args, plan.Args())
	}
	if _, err := os.Stat(plan.Output); err != nil {
		t.Fatalf("expected helper to write output: %v", err)
	}
}

func TestMuxCreatesOutputDirectory(t *testing.T) {
	setHelperCommand(t, "noop")
	dir := t.TempDir()
	plan := testPlan(dir)

	if err := New().Mux(context.Background(), plan); err != nil {
		t.Fatalf("Mux returned error: %v", err)
	}
	info, err := os.Stat(filepath.Dir(plan.Output))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected output directory to exist, err=%v", err)
	}
}

func TestMuxFailureCarriesStderr(t *testing.T) {
	setHelperCommand(t, "failure")
	dir := t.TempDir()
	plan := testPlan(dir)

	err := New().Mux(context.Background(), plan)
	if err == nil {
		t.Fatal("expected error from failing ffmpeg")
	}
	var muxErr *Error
	if !errors.As(err, &muxErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if muxErr.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", muxErr.ExitCode)
	}
	if !strings.Contains(muxErr.Stderr, "Invalid data found when processing input") {
		t.Fatalf("expected stderr captured, got %q", muxErr.Stderr)
	}
	if muxErr.Output != plan.Output {
		t.Fatalf("unexpected output %q", muxErr.Output)
	}
	if !strings.Contains(err.Error(), "exit status 3") {
		t.Fatalf("unexpected error text %q", err.Error())
	}
}

func TestMuxRejectsEmptyPlan(t *testing.T) {
	if err := New().Mux(context.Background(), muxplan.Plan{}); err == nil {
		t.Fatal("expected error for plan without output")
	}
	if err := New().Mux(context.Background(), muxplan.Plan{Output: filepath.Join(t.TempDir(), "o.mkv")}); err == nil {
		t.Fatal("expected error for plan without inputs")
	}
}

func TestCommandPrefixesBinary(t *testing.T) {
	plan := testPlan("/src")
	cmd := New().Command(plan)
	if cmd[0] != DefaultBinary || len(cmd) != len(plan.Args())+1 {
		t.Fatalf("unexpected command %q", cmd)
	}
	if got := New(WithBinary("/opt/ffmpeg/bin/ffmpeg")).Command(plan)[0]; got != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("expected configured binary, got %q", got)
	}
}

func TestErrorLastLine(t *testing.T) {
	err := &Error{Output: "/dst/Show - 01.mkv", ExitCode: 1, Stderr: "Input #0\n  01.mka: Invalid data found when processing input\n\n"}
	if got := err.LastLine(); got != "01.mka: Invalid data found when processing input" {
		t.Fatalf("LastLine = %q", got)
	}
	if want := "ffmpeg Show - 01.mkv: exit status 1: 01.mka: Invalid data found when processing input"; err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestTailKeepsWholeLines(t *testing.T) {
	got := tail("first line\nsecond line\nthird", 12)
	if got != "third" {
		t.Fatalf("tail = %q", got)
	}
	if tail("short", 12) != "short" {
		t.Fatal("expected short input unchanged")
	}
}

func TestTailStartsOnRuneBoundary(t *testing.T) {
	stderr := strings.Repeat("я", 10)
	got := tail(stderr, 5)
	if !utf8.ValidString(got) {
		t.Fatalf("tail produced invalid UTF-8 %q", got)
	}
	if got != "яя" {
		t.Fatalf("tail = %q, want %q", got, "яя")
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}

	switch os.Getenv("FFMPEG_HELPER_MODE") {
	case "success":
		if len(args) == 0 {
			os.Exit(2)
		}
		if err := os.WriteFile(args[len(args)-1], []byte("mkv"), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "ffmpeg version n7.1")
		fmt.Fprintln(os.Stderr, "05.mka: Invalid data found when processing input")
		os.Exit(3)
	default:
		os.Exit(0)
	}
}
