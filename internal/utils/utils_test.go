package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusNotFound, "Bug not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Bug not found", body["message"])
}

func TestQueryString(t *testing.T) {
	q := url.Values{"status": {" open "}, "empty": {"  "}}
	assert.Equal(t, "open", QueryString(q, "status", ""))
	assert.Equal(t, "-createdAt", QueryString(q, "empty", "-createdAt"))
	assert.Equal(t, "x", QueryString(q, "missing", "x"))
}

func TestRequestID(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
	assert.Equal(t, "abc", RequestID(WithRequestID(context.Background(), "abc")))
}
