package server

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/umputun/hnscope/pkg/pipeline"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// writeEvent writes a single server-sent event.
// Results go out as unnamed events, everything else carries its event name.
func writeEvent(w io.Writer, ev pipeline.Event) error {
	var err error
	switch ev.Type {
	case pipeline.EventLog:
		_, err = fmt.Fprintf(w, "event: log\ndata: %s\n\n", lineBreaks.Replace(ev.Message))
	case pipeline.EventData:
		var data []byte
		if data, err = json.Marshal(ev.Story); err != nil {
			return fmt.Errorf("encode story: %w", err)
		}
		_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	case pipeline.EventError:
		payload := struct {
			Error string `json:"error"`
			Title string `json:"title,omitempty"`
		}{Error: ev.Message, Title: ev.Title}
		data, _ := json.Marshal(payload) //nolint:errchkjson // strings only
		_, err = fmt.Fprintf(w, "event: error\ndata: %s\n\n", data)
	case pipeline.EventComplete:
		_, err = fmt.Fprintf(w, "event: complete\ndata: {\"has_more\":%t}\n\n", ev.HasMore)
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	if err != nil {
		return fmt.Errorf("write %s event: %w", ev.Type, err)
	}
	return nil
}
