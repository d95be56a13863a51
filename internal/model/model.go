// Package model defines the shared types for call log batches and the
// timeline views derived from them.
package model

import (
	"time"

	"github.com/valyala/fastjson"
)

// Kind labels the semantic category of one classified timeline event.
type Kind string

const (
	KindSpeech   Kind = "SPEECH"
	KindCall     Kind = "CALL"
	KindRedirect Kind = "REDIR"
	KindResponse Kind = "RESP"
	KindEvent    Kind = "EVENT"
)

// LogRecord is one raw entry of a call log batch. Webhook payloads carry no
// fixed schema, so the request fields stay as parsed JSON values and are
// inspected by key presence downstream.
type LogRecord struct {
	CallID    string
	HasCallID bool  // true only when the record carries a string callId
	Timestamp int64 // microseconds since the Unix epoch

	RequestBody    *fastjson.Value // nil when metadata.requestBody is absent
	RequestHeaders *fastjson.Value // nil when metadata.requestHeaders is absent
	ResponseBody   string          // serialized PerCL, "" when absent
}

// Seconds returns the record timestamp in whole seconds.
func (r LogRecord) Seconds() int64 { return r.Timestamp / 1_000_000 }

// Timeline is the ordered view of a single call's records.
type Timeline struct {
	CallID  string
	Records []LogRecord // sorted by timestamp ascending, ties in input order
	T0      int64       // whole seconds of the earliest record
}

// CallSummary aggregates one distinct call for listing and inspection.
type CallSummary struct {
	CallID          string       `json:"call_id"`
	StartedAt       time.Time    `json:"started_at"`
	DurationSeconds int64        `json:"duration_seconds"`
	EventCount      int          `json:"event_count"`
	KindCounts      map[Kind]int `json:"kind_counts"`
	CommandCount    int          `json:"command_count"`
	From            string       `json:"from,omitempty"`
	To              string       `json:"to,omitempty"`
	FirstTranscript string       `json:"first_transcript,omitempty"`
}
