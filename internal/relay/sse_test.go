package relay

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drip yields the wrapped bytes a few bytes at a time so frames arrive split
// across reads, the way a real network body delivers them.
type drip struct {
	data []byte
	pos  int
	step int
}

func (d *drip) Read(p []byte) (int, error) {
	if d.pos >= len(d.data) {
		return 0, io.EOF
	}
	end := d.pos + d.step
	if end > len(d.data) {
		end = len(d.data)
	}
	n := copy(p, d.data[d.pos:end])
	d.pos += n
	return n, nil
}

func TestFrameScannerYieldsPayloads(t *testing.T) {
	body := "data: {\"a\":1}\n\n: keep-alive comment\n\nevent: message\ndata: {\"b\":2}\n\ndata: [DONE]\n\n"
	sc := newFrameScanner(strings.NewReader(body))

	payload, ok := sc.Next()
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, payload)

	payload, ok = sc.Next()
	require.True(t, ok)
	assert.Equal(t, `{"b":2}`, payload)

	payload, ok = sc.Next()
	require.True(t, ok)
	assert.Equal(t, "[DONE]", payload)

	_, ok = sc.Next()
	assert.False(t, ok)
	assert.NoError(t, sc.Err())
}

func TestFrameScannerReassemblesSplitLines(t *testing.T) {
	body := "data: {\"content\":\"a long delta that will be split\"}\n\ndata: [DONE]\n\n"
	sc := newFrameScanner(&drip{data: []byte(body), step: 3})

	payload, ok := sc.Next()
	require.True(t, ok)
	assert.Equal(t, `{"content":"a long delta that will be split"}`, payload)

	payload, ok = sc.Next()
	require.True(t, ok)
	assert.Equal(t, "[DONE]", payload)
}

func TestFrameScannerHandlesCRLF(t *testing.T) {
	sc := newFrameScanner(strings.NewReader("data: {\"x\":1}\r\n\r\n"))

	payload, ok := sc.Next()
	require.True(t, ok)
	assert.Equal(t, `{"x":1}`, payload)
}

type failingReader struct{ err error }

func (f *failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestFrameScannerSurfacesTransportError(t *testing.T) {
	boom := errors.New("connection reset")
	sc := newFrameScanner(io.MultiReader(strings.NewReader("data: {\"x\":1}\n\n"), &failingReader{err: boom}))

	_, ok := sc.Next()
	require.True(t, ok)

	_, ok = sc.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, sc.Err(), boom)
}
