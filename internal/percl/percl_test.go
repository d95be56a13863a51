package percl

import (
	"strings"
	"testing"
)

func TestDecodePlay(t *testing.T) {
	set := Decode(`[{"Play":{"file":"http://x?id=abc123&y=1"}}]`)
	if !set.Decoded {
		t.Fatalf("expected decoded command set, got fallback %q", set.Fallback)
	}
	if len(set.Commands) != 1 {
		t.Fatalf("expected 1 command, got %d", len(set.Commands))
	}
	if got := set.Commands[0].Label; got != "Play(abc123)" {
		t.Errorf("unexpected Play label: %q", got)
	}
	if got := set.Suffix(); got != " -> Play(abc123)" {
		t.Errorf("unexpected suffix: %q", got)
	}
}

func TestDecodePlayWithoutID(t *testing.T) {
	set := Decode(`[{"Play": {"file": "https://cdn.example.com/static/beep.wav"}}]`)
	if got := set.Commands[0].Label; got != "Play(?)" {
		t.Errorf("expected placeholder id, got %q", got)
	}
}

func TestDecodePlayTruncatesLongID(t *testing.T) {
	id := strings.Repeat("a", 30)
	set := Decode(`[{"Play": {"file": "https://x?id=` + id + `"}}]`)
	want := "Play(" + strings.Repeat("a", 24) + ")"
	if got := set.Commands[0].Label; got != want {
		t.Errorf("expected 24-rune id, got %q", got)
	}
}

func TestDecodeTranscribeUtterance(t *testing.T) {
	set := Decode(`[{"TranscribeUtterance": {"callbackUrl": "https://x/transcribe"}}]`)
	if got := set.Commands[0].Label; got != "Listen" {
		t.Errorf("expected Listen, got %q", got)
	}
}

func TestDecodeRedirect(t *testing.T) {
	set := Decode(`[{"Redirect": {"actionUrl": "https://x/step?n=4"}}]`)
	if got := set.Commands[0].Label; got != "Redirect(n=4)" {
		t.Errorf("unexpected Redirect label: %q", got)
	}
}

func TestDecodeRedirectWithoutSeq(t *testing.T) {
	set := Decode(`[{"Redirect": {"actionUrl": "https://x/step"}}]`)
	if got := set.Commands[0].Label; got != "Redirect(n=?)" {
		t.Errorf("unexpected Redirect label: %q", got)
	}
}

func TestDecodeUnknownCommand(t *testing.T) {
	set := Decode(`[{"Hangup": {}}]`)
	if got := set.Commands[0].Label; got != "Hangup" {
		t.Errorf("expected bare command name, got %q", got)
	}
}

func TestDecodeMultipleCommands(t *testing.T) {
	set := Decode(`[{"Play": {"file": "https://x?id=menu"}}, {"TranscribeUtterance": {}}]`)
	if got := set.Suffix(); got != " -> Play(menu) + Listen" {
		t.Errorf("unexpected suffix: %q", got)
	}
}

func TestDecodeEmptyArray(t *testing.T) {
	set := Decode(`[]`)
	if !set.Decoded {
		t.Fatalf("empty array should decode")
	}
	if len(set.Commands) != 0 {
		t.Fatalf("expected no commands, got %d", len(set.Commands))
	}
	if got := set.Suffix(); got != " -> " {
		t.Errorf("unexpected suffix for empty set: %q", got)
	}
}

func TestDecodeSkipsNonObjectElements(t *testing.T) {
	set := Decode(`[42, {"Play": {"file": "https://x?id=a"}}, "junk"]`)
	if len(set.Commands) != 1 {
		t.Fatalf("expected 1 command, got %d", len(set.Commands))
	}
	if got := set.Commands[0].Label; got != "Play(a)" {
		t.Errorf("unexpected label: %q", got)
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	set := Decode("not valid json")
	if set.Decoded {
		t.Fatalf("expected fallback for invalid body")
	}
	if got := set.Fallback; got != "not valid json" {
		t.Errorf("unexpected fallback: %q", got)
	}
	if got := set.Suffix(); got != " -> not valid json" {
		t.Errorf("unexpected suffix: %q", got)
	}
}

func TestDecodeNonArrayBody(t *testing.T) {
	set := Decode(`{"Play": {"file": "https://x?id=a"}}`)
	if set.Decoded {
		t.Fatalf("object body should fall back to raw text")
	}
	if got := set.Fallback; got != `{"Play": {"file": "https://x?id=a"}}` {
		t.Errorf("unexpected fallback: %q", got)
	}
}

func TestDecodeFallbackTruncation(t *testing.T) {
	body := strings.Repeat("x", 120)
	set := Decode(body)
	if got := set.Fallback; got != strings.Repeat("x", 80) {
		t.Errorf("expected 80-rune fallback, got %d runes", len([]rune(got)))
	}
}
