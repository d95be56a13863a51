// Package format renders call timelines, call lists, and call details.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"

	"github.com/joecarey/jc-voxnos/internal/model"
)

// WriteCalls writes call summaries to w in the requested format.
// transcriptWidth bounds the transcript column; zero or less means
// unbounded.
func WriteCalls(w io.Writer, items []model.CallSummary, includeHeader bool, format string, transcriptWidth int) error {
	switch strings.ToLower(format) {
	case "", "table":
		return writeCallsTable(w, items, includeHeader, transcriptWidth)
	case "plain":
		return writeCallsPlain(w, items, includeHeader, transcriptWidth)
	case "json":
		return writeCallsJSON(w, items)
	case "jsonl":
		return writeCallsJSONL(w, items)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeCallsPlain(w io.Writer, items []model.CallSummary, includeHeader bool, transcriptWidth int) error {
	if includeHeader {
		if _, err := fmt.Fprintln(w, "started\tcall_id\tduration\tevents\tfrom\tto\ttranscript"); err != nil {
			return err
		}
	}

	for _, item := range items {
		line := fmt.Sprintf(
			"%s\t%s\t%s\t%d\t%s\t%s\t%s",
			item.StartedAt.Format(time.RFC3339),
			item.CallID,
			formatDuration(item.DurationSeconds),
			item.EventCount,
			orDash(item.From),
			orDash(item.To),
			clipToWidth(escapeNewlines(item.FirstTranscript), transcriptWidth),
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeCallsJSON(w io.Writer, items []model.CallSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

func writeCallsJSONL(w io.Writer, items []model.CallSummary) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return nil
}

func writeCallsTable(w io.Writer, items []model.CallSummary, includeHeader bool, transcriptWidth int) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateRows = true
	tw.Style().Options.SeparateHeader = true
	tw.Style().Options.DrawBorder = true

	widthMax := transcriptWidth
	if widthMax <= 0 {
		widthMax = 80
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 5, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 6, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 7, Align: text.AlignLeft, AlignHeader: text.AlignCenter, WidthMax: widthMax},
	})

	if includeHeader {
		tw.AppendHeader(table.Row{"Started", "Call ID", "Duration", "Events", "From", "To", "Transcript"})
	}

	for _, item := range items {
		tw.AppendRow(table.Row{
			item.StartedAt.Format(time.RFC3339),
			item.CallID,
			formatDuration(item.DurationSeconds),
			item.EventCount,
			orDash(item.From),
			orDash(item.To),
			escapeNewlines(item.FirstTranscript),
		})
	}

	if len(items) == 0 {
		tw.AppendRow(table.Row{"-", "(no calls)", "00:00:00", 0, "-", "-", "-"})
	}

	_ = tw.Render()
	return nil
}

func escapeNewlines(text string) string {
	return strings.ReplaceAll(text, "\n", "\\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// clipToWidth truncates s to the given display width, appending an
// ellipsis when anything was cut. Widths of zero or less leave s alone.
func clipToWidth(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func formatDuration(seconds int64) string {
	if seconds <= 0 {
		return "00:00:00"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
