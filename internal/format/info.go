package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/joecarey/jc-voxnos/internal/model"
)

type callInfo struct {
	CallID          string         `json:"call_id"`
	StartedAt       string         `json:"started_at"`
	DurationSeconds int64          `json:"duration_seconds"`
	DurationDisplay string         `json:"duration_display"`
	EventCount      int            `json:"event_count"`
	KindCounts      map[string]int `json:"kind_counts"`
	CommandCount    int            `json:"command_count"`
	From            string         `json:"from"`
	To              string         `json:"to"`
	FirstTranscript string         `json:"first_transcript"`
}

var kindOrder = []model.Kind{
	model.KindCall,
	model.KindSpeech,
	model.KindRedirect,
	model.KindResponse,
	model.KindEvent,
}

// WriteInfo writes the detail view of one call summary to w as text or
// indented JSON.
func WriteInfo(w io.Writer, sum model.CallSummary, format string) error {
	payload := callInfo{
		CallID:          sum.CallID,
		StartedAt:       sum.StartedAt.Format(time.RFC3339),
		DurationSeconds: sum.DurationSeconds,
		DurationDisplay: formatDuration(sum.DurationSeconds),
		EventCount:      sum.EventCount,
		KindCounts:      make(map[string]int, len(sum.KindCounts)),
		CommandCount:    sum.CommandCount,
		From:            sum.From,
		To:              sum.To,
		FirstTranscript: sum.FirstTranscript,
	}
	for kind, n := range sum.KindCounts {
		payload.KindCounts[string(kind)] = n
	}

	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "", "text":
		renderInfoText(w, payload, sum.KindCounts)
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func renderInfoText(out io.Writer, payload callInfo, counts map[model.Kind]int) {
	const labelWidth = 10
	writeKV(out, labelWidth, "Call ID", payload.CallID)
	writeKV(out, labelWidth, "Started At", payload.StartedAt)
	writeKV(out, labelWidth, "Duration", payload.DurationDisplay)
	writeKV(out, labelWidth, "Events", eventBreakdown(payload.EventCount, counts))
	writeKV(out, labelWidth, "Commands", fmt.Sprintf("%d", payload.CommandCount))
	writeKV(out, labelWidth, "From", orDash(payload.From))
	writeKV(out, labelWidth, "To", orDash(payload.To))
	writeKV(out, labelWidth, "Transcript", orDash(payload.FirstTranscript))
}

// eventBreakdown renders "7 (1 CALL, 2 SPEECH, 3 RESP)", skipping kinds
// with no events.
func eventBreakdown(total int, counts map[model.Kind]int) string {
	var parts []string
	for _, kind := range kindOrder {
		if n := counts[kind]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, kind))
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%d", total)
	}
	return fmt.Sprintf("%d (%s)", total, strings.Join(parts, ", "))
}

func writeKV(out io.Writer, width int, label string, value string) {
	fmt.Fprintf(out, "%-*s: %s\n", width, label, value)
}
