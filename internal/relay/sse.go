package relay

import (
	"bufio"
	"io"
	"strings"
)

const (
	dataPrefix = "data: "
	doneMarker = "[DONE]"

	// Upstream payload lines can carry large deltas; allow frames well past
	// bufio's 64KB default before giving up on a line.
	maxFrameSize = 1 << 20
)

// frameScanner yields the payload of each `data:` frame from an SSE body.
// Upstream bytes do not align to line terminators, so a line split across
// two network reads must parse identically to one delivered whole; the
// underlying bufio.Reader carries the partial tail between reads.
type frameScanner struct {
	scanner *bufio.Scanner
}

func newFrameScanner(r io.Reader) *frameScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 16*1024), maxFrameSize)
	return &frameScanner{scanner: sc}
}

// Next returns the next frame payload. ok is false when the stream is
// exhausted; Err distinguishes clean EOF from a transport failure.
// Comment lines, blank separators, and non-data fields are skipped.
func (s *frameScanner) Next() (payload string, ok bool) {
	for s.scanner.Scan() {
		line := strings.TrimSuffix(s.scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}
		return strings.TrimSpace(line[len(dataPrefix):]), true
	}
	return "", false
}

// Err returns the first non-EOF error seen by the scanner.
func (s *frameScanner) Err() error {
	return s.scanner.Err()
}
