package monitoring

import (
	"fmt"
	"strings"
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got []string
	SetLogger(func(format string, v ...interface{}) {
		got = append(got, fmt.Sprintf(format, v...))
	})
	Logf("read %d lines", 7201)

	if len(got) != 1 || !strings.Contains(got[0], "7201") {
		t.Fatalf("captured log = %q, want one line mentioning 7201", got)
	}

	// nil installs a no-op, not a panic
	SetLogger(nil)
	Logf("should go nowhere")
	if len(got) != 1 {
		t.Errorf("no-op logger appended output: %q", got)
	}
}

func TestLogfDefault(t *testing.T) {
	if Logf == nil {
		t.Fatal("Logf is nil by default")
	}
}
