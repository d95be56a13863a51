// Package classify turns raw call log records into typed timeline events.
//
// Classification is structural. Records carry no event type field, so the
// kind of each event is recovered from the shape of its request payload,
// checking a fixed list of shapes in priority order.
package classify

import (
	"regexp"

	"github.com/valyala/fastjson"

	"github.com/joecarey/jc-voxnos/internal/model"
	"github.com/joecarey/jc-voxnos/internal/percl"
)

var reSeq = regexp.MustCompile(`[&?]n=(\d+)`)

// Event is one classified timeline entry.
type Event struct {
	Offset   int64             // whole seconds since the timeline epoch
	Detail   Detail
	Commands *percl.CommandSet // nil when the record has no response body
}

// Detail carries the kind-specific fields of a classified event.
type Detail interface {
	Kind() model.Kind
}

// Speech is a transcription callback: the platform heard the caller say
// something.
type Speech struct {
	Reason     string
	Transcript string
}

func (Speech) Kind() model.Kind { return model.KindSpeech }

// InboundCall is the initial webhook announcing a new call.
type InboundCall struct {
	From string
	To   string
}

func (InboundCall) Kind() model.Kind { return model.KindCall }

// Redirect is a control-flow jump. Seq is the n query parameter of the
// first requested URL.
type Redirect struct {
	Seq string
}

func (Redirect) Kind() model.Kind { return model.KindRedirect }

// Response marks a record whose only notable payload is an outbound
// response body.
type Response struct{}

func (Response) Kind() model.Kind { return model.KindResponse }

// Generic is any record matching no other shape.
type Generic struct{}

func (Generic) Kind() model.Kind { return model.KindEvent }

// The shape rules, in match priority order. Order is part of the contract:
// a record matching several shapes takes the first.
var rules = []func(model.LogRecord) (Detail, bool){
	matchSpeech,
	matchInboundCall,
	matchRedirect,
	matchResponse,
}

// Record classifies one record against the timeline epoch t0.
func Record(rec model.LogRecord, t0 int64) Event {
	event := Event{Offset: rec.Seconds() - t0, Detail: Generic{}}
	for _, rule := range rules {
		if detail, ok := rule(rec); ok {
			event.Detail = detail
			break
		}
	}
	if rec.ResponseBody != "" {
		set := percl.Decode(rec.ResponseBody)
		event.Commands = &set
	}
	return event
}

// Events classifies every record of a timeline, in order.
func Events(tl model.Timeline) []Event {
	events := make([]Event, 0, len(tl.Records))
	for _, rec := range tl.Records {
		events = append(events, Record(rec, tl.T0))
	}
	return events
}

func matchSpeech(rec model.LogRecord) (Detail, bool) {
	if rec.RequestBody == nil || !rec.RequestBody.Exists("transcript") {
		return nil, false
	}
	return Speech{
		Reason:     str(rec.RequestBody, "transcribeReason", "?"),
		Transcript: str(rec.RequestBody, "transcript", ""),
	}, true
}

func matchInboundCall(rec model.LogRecord) (Detail, bool) {
	if str(rec.RequestBody, "requestType", "") != "inboundCall" {
		return nil, false
	}
	return InboundCall{
		From: str(rec.RequestBody, "from", "?"),
		To:   str(rec.RequestBody, "to", "?"),
	}, true
}

func matchRedirect(rec model.LogRecord) (Detail, bool) {
	if str(rec.RequestBody, "requestType", "") != "redirect" {
		return nil, false
	}
	seq := "?"
	if m := reSeq.FindStringSubmatch(firstHeaderURL(rec.RequestHeaders)); m != nil {
		seq = m[1]
	}
	return Redirect{Seq: seq}, true
}

func matchResponse(rec model.LogRecord) (Detail, bool) {
	if rec.ResponseBody == "" {
		return nil, false
	}
	return Response{}, true
}

// str reads a string field of a parsed payload, with an explicit default
// for absent, null, or non-string values.
func str(v *fastjson.Value, key, def string) string {
	if v == nil {
		return def
	}
	if b := v.GetStringBytes(key); b != nil {
		return string(b)
	}
	return def
}

// firstHeaderURL returns the first entry of the requestHeaders url list, or
// "" when the headers, the list, or a string first element are absent.
func firstHeaderURL(headers *fastjson.Value) string {
	if headers == nil {
		return ""
	}
	arr := headers.GetArray("url")
	if len(arr) == 0 {
		return ""
	}
	b, err := arr[0].StringBytes()
	if err != nil {
		return ""
	}
	return string(b)
}
