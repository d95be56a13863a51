// Package parser loads call log batches from their JSON export format.
package parser

import (
	"fmt"

	"github.com/valyala/fastjson"

	"github.com/joecarey/jc-voxnos/internal/model"
)

// ParseBatch decodes a call log export of the form {"logs": [...]}.
//
// Only the root document has to be valid JSON. Everything below it degrades
// gracefully: a missing or non-array "logs" value yields an empty batch,
// and a non-object record yields a record with every field absent.
//
// Each call allocates a fresh fastjson parser, so the payload values held
// by the returned records stay valid for the life of the batch.
func ParseBatch(data []byte) ([]model.LogRecord, error) {
	p := new(fastjson.Parser)
	root, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse log batch: %w", err)
	}

	logs := root.GetArray("logs")
	records := make([]model.LogRecord, 0, len(logs))
	for _, rec := range logs {
		records = append(records, decodeRecord(rec))
	}
	return records, nil
}

func decodeRecord(v *fastjson.Value) model.LogRecord {
	rec := model.LogRecord{
		Timestamp:      v.GetInt64("timestamp"),
		RequestBody:    v.Get("metadata", "requestBody"),
		RequestHeaders: v.Get("metadata", "requestHeaders"),
	}
	if id := v.Get("callId"); id != nil {
		if b, err := id.StringBytes(); err == nil {
			rec.CallID = string(b)
			rec.HasCallID = true
		}
	}
	if b := v.GetStringBytes("metadata", "responseBody"); b != nil {
		rec.ResponseBody = string(b)
	}
	return rec
}
