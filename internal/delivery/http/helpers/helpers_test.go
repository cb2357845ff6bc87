package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingRequest struct {
	Name string `json:"name"`
}

func TestWriteJSONSuccess(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSONSuccess(rr, http.StatusCreated, map[string]string{"id": "1"})

	require.Equal(t, http.StatusCreated, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"id":"1"},"error":null}`, rr.Body.String())
}

func TestWriteJSONError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSONError(rr, http.StatusNotFound, ErrCodeNotFound, "event not found")

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"data":null,"error":{"code":"not_found","message":"event not found"}}`, rr.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantStatus int
		wantIn     string
		wantFields []string
	}{
		{name: "valid", body: `{"name":"Ana"}`, wantOK: true},
		{name: "unknown field", body: `{"name":"Ana","admin":true}`, wantStatus: http.StatusBadRequest, wantIn: "unknown field", wantFields: []string{"admin"}},
		{name: "wrong type", body: `{"name":42}`, wantStatus: http.StatusBadRequest, wantIn: "name must be a string", wantFields: []string{"name"}},
		{name: "malformed", body: `{"name":`, wantStatus: http.StatusBadRequest, wantIn: "malformed"},
		{name: "empty", body: ``, wantStatus: http.StatusBadRequest, wantIn: "empty"},
		{name: "too large", body: `{"name":"` + strings.Repeat("a", MaxJSONBodyBytes) + `"}`, wantStatus: http.StatusRequestEntityTooLarge, wantIn: "too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dest pingRequest

			ok := DecodeJSON(rr, req, &dest)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, "Ana", dest.Name)
				return
			}
			require.Equal(t, tt.wantStatus, rr.Code)
			var resp APIResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, ErrCodeBadRequest, resp.Error.Code)
			assert.Contains(t, resp.Error.Message, tt.wantIn)
			assert.Equal(t, tt.wantFields, resp.Error.Fields)
		})
	}
}
