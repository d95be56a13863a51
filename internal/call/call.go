// Package call selects and aggregates the records of individual calls
// within a batch.
package call

import (
	"sort"
	"time"

	"github.com/joecarey/jc-voxnos/internal/classify"
	"github.com/joecarey/jc-voxnos/internal/model"
)

// Select filters records to one call and orders them into a timeline.
// The sort by timestamp is stable, so records sharing a timestamp keep
// their batch order. Records without a callId never match, not even an
// empty target.
func Select(records []model.LogRecord, callID string) model.Timeline {
	tl := model.Timeline{CallID: callID}
	for _, rec := range records {
		if rec.HasCallID && rec.CallID == callID {
			tl.Records = append(tl.Records, rec)
		}
	}
	sort.SliceStable(tl.Records, func(i, j int) bool {
		return tl.Records[i].Timestamp < tl.Records[j].Timestamp
	})
	if len(tl.Records) > 0 {
		tl.T0 = tl.Records[0].Seconds()
	}
	return tl
}

// List aggregates every distinct call in the batch, newest first. A limit
// of zero or less means no limit.
func List(records []model.LogRecord, limit int) []model.CallSummary {
	var order []string
	byID := make(map[string][]model.LogRecord)
	for _, rec := range records {
		if !rec.HasCallID {
			continue
		}
		if _, seen := byID[rec.CallID]; !seen {
			order = append(order, rec.CallID)
		}
		byID[rec.CallID] = append(byID[rec.CallID], rec)
	}

	summaries := make([]model.CallSummary, 0, len(order))
	for _, id := range order {
		summaries = append(summaries, Summarize(Select(byID[id], id)))
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].StartedAt.After(summaries[j].StartedAt)
	})

	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries
}

// Summarize derives the aggregate view of one call timeline.
func Summarize(tl model.Timeline) model.CallSummary {
	sum := model.CallSummary{
		CallID:     tl.CallID,
		EventCount: len(tl.Records),
		KindCounts: make(map[model.Kind]int),
	}
	if len(tl.Records) == 0 {
		return sum
	}

	first := tl.Records[0]
	last := tl.Records[len(tl.Records)-1]
	sum.StartedAt = time.UnixMicro(first.Timestamp).UTC()
	sum.DurationSeconds = last.Seconds() - first.Seconds()

	for _, event := range classify.Events(tl) {
		sum.KindCounts[event.Detail.Kind()]++
		if event.Commands != nil && event.Commands.Decoded {
			sum.CommandCount += len(event.Commands.Commands)
		}
		switch detail := event.Detail.(type) {
		case classify.InboundCall:
			if sum.From == "" && sum.To == "" {
				sum.From = detail.From
				sum.To = detail.To
			}
		case classify.Speech:
			if sum.FirstTranscript == "" {
				sum.FirstTranscript = detail.Transcript
			}
		}
	}
	return sum
}
