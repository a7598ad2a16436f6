package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"dubmux/internal/pipeline"
	"dubmux/internal/preflight"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	subjectWidth = 28
	lineIndent   = "  "
)

// badge is the bracketed marker after a subject, e.g. "[SKIP]".
type badge struct {
	label string
	color string
}

var (
	badgeOK      = badge{"OK", ansiGreen}
	badgePlan    = badge{"PLAN", ansiBlue}
	badgeSkip    = badge{"SKIP", ansiYellow}
	badgeFail    = badge{"FAIL", ansiRed}
	badgeAbsent  = badge{"ABSENT", ansiYellow}
	badgeMissing = badge{"MISSING", ansiRed}
)

func outcomeBadge(status pipeline.Status) badge {
	switch {
	case status == pipeline.StatusMerged:
		return badgeOK
	case status.Skipped():
		return badgeSkip
	case status == pipeline.StatusFailed:
		return badgeFail
	default:
		return badgePlan
	}
}

func checkBadge(r preflight.Result) badge {
	switch {
	case r.Passed:
		return badgeOK
	case r.Optional:
		return badgeAbsent
	default:
		return badgeMissing
	}
}

// renderLine formats "  <subject>: [LABEL] message", padding the subject so
// badges line up across a report.
func renderLine(subject string, b badge, message string, colorize bool) string {
	line := fmt.Sprintf("%s%-*s [%s]", lineIndent, subjectWidth, subject+":", b.label)
	if message != "" {
		line += " " + message
	}
	if colorize {
		return b.color + line + ansiReset
	}
	return line
}

func renderOutcomeLine(o pipeline.Outcome, colorize bool) string {
	return renderLine(filepath.Base(o.Video), outcomeBadge(o.Status), outcomeMessage(o), colorize)
}

func renderCheckLine(r preflight.Result, colorize bool) string {
	return renderLine(r.Name, checkBadge(r), r.Detail, colorize)
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len([]rune(line)))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	return isTerminal(writer)
}
