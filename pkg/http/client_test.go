package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSONSendsQueryAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		assert.Equal(t, "signaldash/1.0", r.Header.Get("User-Agent"))
		_, _ = io.WriteString(w, `{"status":"success"}`)
	}))
	defer srv.Close()

	var out struct {
		Status string `json:"status"`
	}
	err := NewClient().GetJSON(context.Background(), srv.URL, url.Values{"symbol": {"BTCUSDT"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "success", out.Status)
}

func TestPostJSONEncodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "30d", in["period"])
		_, _ = io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	err := NewClient().PostJSON(context.Background(), srv.URL, map[string]string{"period": "30d"}, nil)
	require.NoError(t, err)
}

func TestNon2xxReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"message":"engine crashed"}`)
	}))
	defer srv.Close()

	err := NewClient(WithTimeout(time.Second)).GetJSON(context.Background(), srv.URL, nil, nil)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.JSONEq(t, `{"message":"engine crashed"}`, string(se.Body))
}
