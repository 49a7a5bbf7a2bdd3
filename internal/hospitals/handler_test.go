package hospitals

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *Handler {
	svc := NewService(NewInMemoryRepository(Seed()), nil, nil, nil)
	return NewHandler(svc, nil, nil)
}

func TestHandlerSearch(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/capabilities/hospitals",
		strings.NewReader(`{"country":"Mexico"}`))
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Hospitals []Hospital `json:"hospitals"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Hospitals, 2)
	for _, hosp := range body.Hospitals {
		assert.Equal(t, "Mexico", hosp.Country)
	}
}

func TestHandlerSearchRejectsBadBody(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/capabilities/hospitals",
		strings.NewReader(`{broken`))
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}
