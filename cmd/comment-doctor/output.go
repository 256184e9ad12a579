// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/petar-djukic/comment-doctor/pkg/doctor"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

type mode int

const (
	modeFix mode = iota
	modeDryRun
	modeCheck
)

func summaryMode(cfg doctor.Config) mode {
	switch {
	case cfg.Check:
		return modeCheck
	case cfg.DryRun:
		return modeDryRun
	default:
		return modeFix
	}
}

// printSummary writes a human-readable report. Colour is disabled when
// NO_COLOR is set or stdout is not a terminal.
func printSummary(w io.Writer, res *doctor.Result, m mode) {
	for _, f := range res.Files {
		if f.Diff != "" {
			printDiff(w, f.Diff)
		}
		for _, is := range f.Issues {
			fmt.Fprintf(w, "%s %s: %s\n", red("issue"), f.Path, is)
		}
		switch {
		case f.Error != "":
			fmt.Fprintf(w, "%s %s: %s\n", red("error"), f.Path, f.Error)
		case f.Changed && m == modeFix:
			fmt.Fprintf(w, "%s %s (%d)\n", green("promoted"), f.Path, f.Edits)
		case f.Changed:
			fmt.Fprintf(w, "%s %s (%d)\n", yellow("would promote"), f.Path, f.Edits)
		}
	}
	for _, s := range res.Skipped {
		fmt.Fprintf(w, "%s %s: unsupported extension\n", yellow("skipped"), s)
	}

	verb := "promoted"
	if m != modeFix {
		verb = "to promote"
	}
	fmt.Fprintf(w, "%s: %d file(s) scanned, %d comment(s) %s, %d left unchanged",
		bold("comment-doctor"), len(res.Files), res.Promoted, verb, res.Unchanged)
	if n := len(res.Errors); n > 0 {
		fmt.Fprintf(w, ", %s", red(fmt.Sprintf("%d error(s)", n)))
	}
	fmt.Fprintln(w)
	if res.Commit != "" {
		fmt.Fprintf(w, "committed %s\n", cyan(shortHash(res.Commit)))
	}
}

func printDiff(w io.Writer, diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case line == "":
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			fmt.Fprint(w, bold(line))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprint(w, cyan(line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprint(w, green(line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprint(w, red(line))
		default:
			fmt.Fprint(w, line)
		}
	}
}

// printJSON outputs the result as JSON.
func printJSON(w io.Writer, res *doctor.Result) {
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "Error marshaling result: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(out))
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
