package dashboard

import (
	"bytes"
	"testing"
)

func TestWriteSSE(t *testing.T) {
	var buf bytes.Buffer
	writeSSE(&buf, "report", reportEvent{Seq: 3, OverallProgress: 42, TotalIssues: 7})
	want := "event: report\ndata: {\"seq\":3,\"overallProgress\":42,\"totalIssues\":7}\n\n"
	if buf.String() != want {
		t.Errorf("writeSSE = %q, want %q", buf.String(), want)
	}
}

func TestWriteComment(t *testing.T) {
	var buf bytes.Buffer
	writeComment(&buf, "heartbeat 2025-10-01T07:00:00Z")
	want := ": heartbeat 2025-10-01T07:00:00Z\n\n"
	if buf.String() != want {
		t.Errorf("writeComment = %q, want %q", buf.String(), want)
	}
}
