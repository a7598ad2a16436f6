package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"dubmux/internal/media"
	"dubmux/internal/muxer"
	"dubmux/internal/pipeline"
)

func outcomeMessage(o pipeline.Outcome) string {
	switch o.Status {
	case pipeline.StatusSkippedNoKey:
		return "no episode key in filename"
	case pipeline.StatusSkippedNoAssets:
		return "no audio or subtitles matched"
	case pipeline.StatusFailed:
		if o.Err != nil {
			return o.Err.Error()
		}
		return "failed"
	default:
		return fmt.Sprintf("%s, %s", plural(len(o.Audio), "audio track"), plural(len(o.Subtitles), "subtitle"))
	}
}

// renderCheckReport prints, per video, the matched assets and the ffmpeg
// command a merge run would execute.
func renderCheckReport(out io.Writer, summary pipeline.Summary, ffmpeg *muxer.FFmpeg, colorize bool) {
	for _, o := range summary.Outcomes {
		fmt.Fprintln(out)
		for _, line := range renderSectionHeader(filepath.Base(o.Video), colorize) {
			fmt.Fprintln(out, line)
		}
		fmt.Fprintln(out, renderOutcomeLine(o, colorize))
		if o.Status != pipeline.StatusPlanned {
			continue
		}
		fmt.Fprintf(out, "Episode key: %s\n", o.Key)
		if len(o.Audio)+len(o.Subtitles) == 0 {
			continue
		}
		fmt.Fprintln(out, renderTable(
			[]column{{title: "#", numeric: true}, {title: "Type"}, {title: "Group"}, {title: "File"}},
			assetRows(o.Audio, o.Subtitles),
		))
		fmt.Fprintf(out, "Command: %s\n", shellJoin(ffmpeg.Command(o.Plan)))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderCountsTable(summary))
}

func assetRows(audio, subtitles []media.Asset) [][]string {
	rows := make([][]string, 0, len(audio)+len(subtitles))
	n := 0
	for _, group := range [][]media.Asset{audio, subtitles} {
		for _, a := range group {
			n++
			rows = append(rows, []string{strconv.Itoa(n), a.Class.String(), a.Group, a.Name()})
		}
	}
	return rows
}

// renderSummary prints totals after a merge run and lists every failure with
// the last line ffmpeg wrote to stderr.
func renderSummary(out io.Writer, summary pipeline.Summary, dest string, colorize bool) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderCountsTable(summary))

	var failures [][]string
	for _, o := range summary.Outcomes {
		if o.Status != pipeline.StatusFailed {
			continue
		}
		reason := outcomeMessage(o)
		var muxErr *muxer.Error
		if errors.As(o.Err, &muxErr) && muxErr.Stderr != "" {
			reason = muxErr.LastLine()
		}
		failures = append(failures, []string{filepath.Base(o.Video), reason})
	}
	if len(failures) > 0 {
		fmt.Fprintln(out, renderTable([]column{{title: "Failed video"}, {title: "Reason"}}, failures))
	}
	if merged := summary.Count(pipeline.StatusMerged); merged > 0 {
		fmt.Fprintln(out, renderLine("Output", badgeOK, fmt.Sprintf("%s in %s", plural(merged, "file"), dest), colorize))
	}
}

func renderCountsTable(summary pipeline.Summary) string {
	rows := [][]string{}
	for _, status := range []pipeline.Status{
		pipeline.StatusMerged,
		pipeline.StatusPlanned,
		pipeline.StatusSkippedNoKey,
		pipeline.StatusSkippedNoAssets,
		pipeline.StatusFailed,
	} {
		if n := summary.Count(status); n > 0 {
			rows = append(rows, []string{string(status), strconv.Itoa(n)})
		}
	}
	rows = append(rows, []string{"total", strconv.Itoa(len(summary.Outcomes))})
	return renderTable([]column{{title: "Status"}, {title: "Videos", numeric: true}}, rows)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// shellJoin renders args for display, quoting any that a POSIX shell would
// split or expand.
func shellJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		if arg != "" && !strings.ContainsAny(arg, " \t\n'\"\\$`*?[]{}()<>|&;#~") {
			quoted[i] = arg
			continue
		}
		quoted[i] = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
	}
	return strings.Join(quoted, " ")
}
