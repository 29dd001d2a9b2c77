package tuitest

import (
	"bytes"
	"testing"
)

func TestTerminalResponderAnswersQueries(t *testing.T) {
	var out bytes.Buffer
	tr := newTerminalResponder(&out)
	tr.Process([]byte("abc\x1b[6"))
	if out.Len() != 0 {
		t.Fatalf("partial query answered early: %q", out.String())
	}
	tr.Process([]byte("n\x1b]11;?\x07"))
	want := "\x1b[1;1R\x1b]11;rgb:0000/0000/0000\x07"
	if out.String() != want {
		t.Fatalf("responses = %q, want %q", out.String(), want)
	}
}
