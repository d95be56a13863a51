// Package percl decodes PerCL response bodies into display summaries.
//
// A response body is a JSON array of single-key command objects, e.g.
// [{"Play": {...}}, {"TranscribeUtterance": {...}}]. Decoding is best
// effort: a body that does not parse as a command array degrades to a raw
// text fallback instead of an error.
package percl

import (
	"regexp"
	"strings"

	"github.com/valyala/fastjson"
)

const (
	fallbackLimit = 80
	playIDLimit   = 24
)

var (
	reSeq    = regexp.MustCompile(`[&?]n=(\d+)`)
	rePlayID = regexp.MustCompile(`id=([^&]+)`)

	parsers fastjson.ParserPool
)

// Command is one decoded response command.
type Command struct {
	Name  string // the command key, e.g. "Play"
	Label string // display form, e.g. "Play(greeting1)"
}

// CommandSet is the result of decoding one response body. It has two
// variants: a decoded command list, or the raw fallback text when the body
// is not a command array.
type CommandSet struct {
	Commands []Command
	Fallback string // set only when Decoded is false
	Decoded  bool
}

// Decode parses body as a PerCL command array. It never fails: anything
// that is not a JSON array comes back as the truncated raw fallback.
func Decode(body string) CommandSet {
	p := parsers.Get()
	defer parsers.Put(p)

	v, err := p.Parse(body)
	if err != nil || v.Type() != fastjson.TypeArray {
		return CommandSet{Fallback: truncateRunes(body, fallbackLimit)}
	}

	set := CommandSet{Decoded: true}
	arr, _ := v.Array()
	for _, item := range arr {
		obj, err := item.Object()
		if err != nil {
			continue // non-object elements carry no command
		}
		obj.Visit(func(key []byte, val *fastjson.Value) {
			set.Commands = append(set.Commands, decodeCommand(string(key), val))
		})
	}
	return set
}

func decodeCommand(name string, val *fastjson.Value) Command {
	switch name {
	case "Play":
		id := "?"
		if m := rePlayID.FindStringSubmatch(stringField(val, "file")); m != nil {
			id = m[1]
		}
		return Command{Name: name, Label: "Play(" + truncateRunes(id, playIDLimit) + ")"}
	case "TranscribeUtterance":
		return Command{Name: name, Label: "Listen"}
	case "Redirect":
		n := "?"
		if m := reSeq.FindStringSubmatch(stringField(val, "actionUrl")); m != nil {
			n = m[1]
		}
		return Command{Name: name, Label: "Redirect(n=" + n + ")"}
	default:
		return Command{Name: name, Label: name}
	}
}

// Labels returns the rendered command labels in document order.
func (s CommandSet) Labels() []string {
	labels := make([]string, len(s.Commands))
	for i, c := range s.Commands {
		labels[i] = c.Label
	}
	return labels
}

// Suffix renders the timeline suffix for this set, leading " -> " included:
// the joined labels for a decoded body, the raw fallback otherwise.
func (s CommandSet) Suffix() string {
	if !s.Decoded {
		return " -> " + s.Fallback
	}
	return " -> " + strings.Join(s.Labels(), " + ")
}

func stringField(v *fastjson.Value, key string) string {
	if v == nil {
		return ""
	}
	if b := v.GetStringBytes(key); b != nil {
		return string(b)
	}
	return ""
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
