package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/joecarey/jc-voxnos/internal/classify"
	"github.com/joecarey/jc-voxnos/internal/model"
)

const separatorWidth = 80

// TimelineOptions control timeline rendering. Colors piggyback on the
// plain layout, so disabling them yields the exact uncolored bytes.
type TimelineOptions struct {
	Color bool
}

// WriteTimeline renders a call header followed by one line per event.
func WriteTimeline(w io.Writer, callID string, events []classify.Event, opts TimelineOptions) error {
	id := callID
	if opts.Color {
		id = colorize(true, ansiBoldWhite, callID)
	}
	if _, err := fmt.Fprintf(w, "Call: %s  (%d events)\n", id, len(events)); err != nil {
		return err
	}

	separator := strings.Repeat("-", separatorWidth)
	if opts.Color {
		separator = colorize(true, ansiSeparator, separator)
	}
	if _, err := fmt.Fprintln(w, separator); err != nil {
		return err
	}

	for _, event := range events {
		if _, err := fmt.Fprintln(w, EventLine(event, opts)); err != nil {
			return err
		}
	}
	return nil
}

// EventLine renders one timeline line: the offset, the kind-specific
// detail, and the response command suffix when the record carried one.
// Parts are joined with a two-space separator.
func EventLine(event classify.Event, opts TimelineOptions) string {
	offset := fmt.Sprintf("+%4ds", event.Offset)
	if opts.Color {
		offset = colorize(true, ansiTimestamp, offset)
	}

	parts := []string{offset, renderDetail(event.Detail, opts.Color)}
	if event.Commands != nil {
		suffix := event.Commands.Suffix()
		if opts.Color {
			suffix = colorize(true, ansiSeparator, suffix)
		}
		parts = append(parts, suffix)
	}
	return strings.Join(parts, "  ")
}

// detailLabel renders the kind-specific display string. The kind tokens pad
// to a common width so the detail column lines up across lines; the bare
// RESP and EVENT tokens stay unpadded.
func detailLabel(detail classify.Detail) string {
	switch d := detail.(type) {
	case classify.Speech:
		return fmt.Sprintf("SPEECH  reason=%s  \"%s\"", d.Reason, d.Transcript)
	case classify.InboundCall:
		return fmt.Sprintf("CALL    from=%s to=%s", d.From, d.To)
	case classify.Redirect:
		return fmt.Sprintf("REDIR   n=%s", d.Seq)
	case classify.Response:
		return "RESP"
	default:
		return "EVENT"
	}
}

func renderDetail(detail classify.Detail, useColor bool) string {
	label := detailLabel(detail)
	if !useColor {
		return label
	}
	// Every label starts with its kind token; color just that token.
	kind := string(detail.Kind())
	return colorize(true, kindColor(detail.Kind()), kind) + label[len(kind):]
}

const (
	ansiReset     = "\x1b[0m"
	ansiBoldWhite = "\x1b[1;97m"
	ansiTimestamp = "\x1b[38;5;245m"
	ansiSeparator = "\x1b[38;5;240m"
	ansiSpeech    = "\x1b[38;5;220m"
	ansiCall      = "\x1b[38;5;44m"
	ansiRedirect  = "\x1b[38;5;207m"
)

func colorize(enabled bool, code string, text string) string {
	if !enabled {
		return text
	}
	return code + text + ansiReset
}

func kindColor(kind model.Kind) string {
	switch kind {
	case model.KindSpeech:
		return ansiSpeech
	case model.KindCall:
		return ansiCall
	case model.KindRedirect:
		return ansiRedirect
	default:
		return ansiSeparator
	}
}
