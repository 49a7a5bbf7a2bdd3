package chat

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/medvoy/medvoy-platform/internal/relay"
)

// sseSink writes relay events to the HTTP response as server-sent events
// and flushes after every frame so the client sees tokens as they arrive.
type sseSink struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newSSESink(w http.ResponseWriter, flusher http.Flusher) *sseSink {
	return &sseSink{w: w, flusher: flusher}
}

func (s *sseSink) Send(ev relay.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("chat: encoding event: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

func (s *sseSink) Done() {
	fmt.Fprint(s.w, "data: [DONE]\n\n")
	s.flusher.Flush()
}

// recordingSink tees text events so the handler can persist the assistant's
// reply after the stream closes.
type recordingSink struct {
	relay.Sink
	assistant []byte
}

func (s *recordingSink) Send(ev relay.Event) error {
	if ev.Type == relay.EventText {
		s.assistant = append(s.assistant, ev.Content...)
	}
	return s.Sink.Send(ev)
}
