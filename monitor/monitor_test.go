package monitor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/engine"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/layout"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/model"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/pipeline"
)

type nullSink struct{}

func (nullSink) Send(model.MIDIEvent) error { return nil }

func newTestHandler(t *testing.T) http.Handler {
	table, err := layout.Get("stradella")
	assert.NoError(t, err)
	eng := engine.New(table, zap.NewNop())
	return Handler(pipeline.New(eng, nullSink{}, zap.NewNop(), 0), table)
}

func TestStateEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/state", nil))

	assert := assert.New(t)
	assert.Equal(http.StatusOK, rec.Code)
	assert.Equal("application/json", rec.Header().Get("Content-Type"))

	var snap model.StateSnapshot
	assert.NoError(json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal("stradella", snap.Layout)
	assert.NotEmpty(snap.Session)
	assert.Empty(snap.Held)
}

func TestLayoutEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/layout", nil))

	assert := assert.New(t)
	assert.Equal(http.StatusOK, rec.Code)

	var res layoutResponse
	assert.NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal("stradella", res.Name)
	assert.NotEmpty(res.Cells)

	byKey := map[string]layoutCell{}
	for _, cell := range res.Cells {
		byKey[cell.Key] = cell
	}
	assert.Equal(uint8(36), byKey["KEY_E"].Pitch)
	assert.Equal(uint8(3), byKey["KEY_E"].Channel)
	assert.Equal(uint8(64), byKey["KEY_SPACE"].Control)
}

func TestUnknownRouteReturnsJSONError(t *testing.T) {
	handler := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/nope", nil))

	assert := assert.New(t)
	assert.Equal(http.StatusNotFound, rec.Code)

	var res model.ErrorResponse
	assert.NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal("not found", res.Error)
}

func TestCORSHeadersPresent(t *testing.T) {
	handler := newTestHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/state", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
