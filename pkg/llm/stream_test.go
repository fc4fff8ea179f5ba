package llm

import (
	"reflect"
	"testing"
)

// collectDeltas runs the full decode/parse loop over the given chunks and
// returns the deltas in arrival order, stopping at the termination sentinel.
func collectDeltas(t *testing.T, chunks [][]byte) []string {
	t.Helper()
	dec := &streamDecoder{}
	var deltas []string
	for _, chunk := range chunks {
		for _, line := range dec.feed(chunk) {
			delta, done, ok := parseFrame(line)
			if done {
				return deltas
			}
			if ok && delta != "" {
				deltas = append(deltas, delta)
			}
		}
	}
	if tail := dec.tail(); tail != "" {
		delta, done, ok := parseFrame(tail)
		if !done && ok && delta != "" {
			deltas = append(deltas, delta)
		}
	}
	return deltas
}

const samplePayload = ": keep-alive\n" +
	"data: {\"choices\":[{\"delta\":{\"role\":\"assistant\"}}]}\n" +
	"data: {\"choices\":[{\"delta\":{\"content\":\"你好，\"}}]}\r\n" +
	"\n" +
	"data: {\"choices\":[{\"delta\":{\"content\":\"world\"}}]}\n" +
	"data: [DONE]\n"

var sampleDeltas = []string{"你好，", "world"}

func TestCollectDeltas_SingleChunk(t *testing.T) {
	got := collectDeltas(t, [][]byte{[]byte(samplePayload)})
	if !reflect.DeepEqual(got, sampleDeltas) {
		t.Fatalf("deltas = %q, want %q", got, sampleDeltas)
	}
}

// Splitting the same payload at every possible byte offset must yield the
// identical delta sequence, including splits inside multi-byte characters and
// inside JSON frames.
func TestCollectDeltas_SplitAtEveryOffset(t *testing.T) {
	payload := []byte(samplePayload)
	for i := 1; i < len(payload); i++ {
		got := collectDeltas(t, [][]byte{payload[:i], payload[i:]})
		if !reflect.DeepEqual(got, sampleDeltas) {
			t.Fatalf("split at %d: deltas = %q, want %q", i, got, sampleDeltas)
		}
	}
}

func TestCollectDeltas_OneByteChunks(t *testing.T) {
	var chunks [][]byte
	for _, b := range []byte(samplePayload) {
		chunks = append(chunks, []byte{b})
	}
	got := collectDeltas(t, chunks)
	if !reflect.DeepEqual(got, sampleDeltas) {
		t.Fatalf("deltas = %q, want %q", got, sampleDeltas)
	}
}

// The termination sentinel must stop extraction even when malformed lines
// follow it.
func TestCollectDeltas_DoneStopsExtraction(t *testing.T) {
	payload := "data: {\"choices\":[{\"delta\":{\"content\":\"a\"}}]}\n" +
		"data: [DONE]\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\"ignored\"}}]}\n" +
		"data: {garbage\n"
	got := collectDeltas(t, [][]byte{[]byte(payload)})
	want := []string{"a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("deltas = %q, want %q", got, want)
	}
}

// A final frame without a trailing newline must still be parsed at stream end.
func TestCollectDeltas_NoTrailingNewline(t *testing.T) {
	payload := "data: {\"choices\":[{\"delta\":{\"content\":\"a\"}}]}\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\"b\"}}]}"
	got := collectDeltas(t, [][]byte{[]byte(payload)})
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("deltas = %q, want %q", got, want)
	}
}

func TestParseFrame(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantDelta string
		wantDone  bool
		wantOK    bool
	}{
		{
			name: "blank line",
			line: "",
		},
		{
			name: "comment frame",
			line: ": ping",
		},
		{
			name: "unrecognized prefix",
			line: "event: message",
		},
		{
			name:     "termination sentinel",
			line:     "data: [DONE]",
			wantDone: true,
		},
		{
			name:     "sentinel with surrounding whitespace",
			line:     "data:  [DONE] ",
			wantDone: true,
		},
		{
			name: "malformed payload",
			line: "data: {\"choices\":[{\"delta\":",
		},
		{
			name:   "empty choices",
			line:   "data: {\"choices\":[]}",
			wantOK: true,
		},
		{
			name:   "role-only frame carries no delta",
			line:   "data: {\"choices\":[{\"delta\":{\"role\":\"assistant\"}}]}",
			wantOK: true,
		},
		{
			name:      "content frame",
			line:      "data: {\"choices\":[{\"delta\":{\"content\":\"hi\"}}]}",
			wantDelta: "hi",
			wantOK:    true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			delta, done, ok := parseFrame(tc.line)
			if delta != tc.wantDelta || done != tc.wantDone || ok != tc.wantOK {
				t.Errorf("parseFrame(%q) = (%q, %v, %v), want (%q, %v, %v)",
					tc.line, delta, done, ok, tc.wantDelta, tc.wantDone, tc.wantOK)
			}
		})
	}
}

func TestStreamDecoder_HoldsBackIncompleteLine(t *testing.T) {
	dec := &streamDecoder{}
	if lines := dec.feed([]byte("data: {\"choi")); len(lines) != 0 {
		t.Fatalf("incomplete line surfaced early: %q", lines)
	}
	lines := dec.feed([]byte("ces\":[]}\n"))
	want := []string{"data: {\"choices\":[]}"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
}
