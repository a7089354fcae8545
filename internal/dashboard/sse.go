package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sitewatch/sitewatch/internal/progress"
)

const (
	defaultPollInterval = 3 * time.Second
	heartbeatInterval   = 15 * time.Second
)

// reportEvent announces a newly ingested report with the recomputed
// project progress.
type reportEvent struct {
	Seq             uint `json:"seq"`
	OverallProgress int  `json:"overallProgress"`
	TotalIssues     int  `json:"totalIssues"`
}

// handleEvents streams a "report" event whenever a new report is ingested.
// Heartbeats are SSE comments so clients never see them as events.
func (h *handler) handleEvents(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	writeSSE(c.Writer, "connected", map[string]string{"type": "connected"})
	c.Writer.Flush()

	lastSeq, err := latestReportSeq(h.db)
	if err != nil {
		writeSSE(c.Writer, "error", map[string]string{"error": err.Error()})
		c.Writer.Flush()
		return
	}

	ctx := c.Request.Context()
	ticker := time.NewTicker(h.interval)
	heartbeat := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			writeComment(c.Writer, "heartbeat "+time.Now().UTC().Format(time.RFC3339))
			c.Writer.Flush()
		case <-ticker.C:
			seq, err := latestReportSeq(h.db)
			if err != nil || seq <= lastSeq {
				continue
			}
			lastSeq = seq

			rep, err := scopeReport(h.db, h.engine, progress.Project())
			if err != nil {
				continue
			}
			writeSSE(c.Writer, "report", reportEvent{
				Seq:             seq,
				OverallProgress: rep.OverallProgress,
				TotalIssues:     rep.TotalIssues,
			})
			c.Writer.Flush()
		}
	}
}

// writeSSE writes a single SSE event to the writer.
func writeSSE(w io.Writer, event string, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, string(jsonData))
}

// writeComment writes an SSE comment line, which EventSource clients ignore.
func writeComment(w io.Writer, text string) {
	fmt.Fprintf(w, ": %s\n\n", text)
}
