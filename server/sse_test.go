package server

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/hnscope/pkg/pipeline"
)

func TestWriteEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   pipeline.Event
		want string
	}{
		{name: "log", ev: pipeline.LogEvent("Fetching Go 1.24..."), want: "event: log\ndata: Fetching Go 1.24...\n\n"},
		{name: "log with line breaks", ev: pipeline.LogEvent("line one\nline two\r\nthree"),
			want: "event: log\ndata: line one line two three\n\n"},
		{name: "story error", ev: pipeline.ErrorEvent("Error processing story X: boom", "X"),
			want: "event: error\ndata: {\"error\":\"Error processing story X: boom\",\"title\":\"X\"}\n\n"},
		{name: "stream error", ev: pipeline.ErrorEvent("Stream error: listing down", ""),
			want: "event: error\ndata: {\"error\":\"Stream error: listing down\"}\n\n"},
		{name: "complete with more", ev: pipeline.CompleteEvent(true), want: "event: complete\ndata: {\"has_more\":true}\n\n"},
		{name: "complete", ev: pipeline.CompleteEvent(false), want: "event: complete\ndata: {\"has_more\":false}\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeEvent(&buf, tt.ev))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteEvent_Errors(t *testing.T) {
	err := writeEvent(&bytes.Buffer{}, pipeline.Event{Type: "bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown event type")

	err = writeEvent(failWriter{}, pipeline.LogEvent("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write log event")
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }
