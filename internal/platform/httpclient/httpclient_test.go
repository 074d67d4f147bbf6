package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON_PostAndDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sows/s1/rebuild", r.URL.Path)
		assert.Equal(t, "u1", r.Header.Get("X-Debug-User-ID"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "x", body["k"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"paridad":3}`))
	}))
	defer srv.Close()

	c, err := NewWithBaseURL(srv.URL+"/", time.Second)
	require.NoError(t, err)

	var out struct {
		Parity int `json:"paridad"`
	}
	err = c.DoJSON(context.Background(), http.MethodPost, "/sows/s1/rebuild",
		map[string]string{"X-Debug-User-ID": "u1"}, map[string]string{"k": "x"}, &out)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Parity)
}

func TestDoJSON_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no farrowing on record", http.StatusConflict)
	}))
	defer srv.Close()

	c := New(time.Second)
	err := c.DoJSON(context.Background(), http.MethodGet, srv.URL+"/x", nil, nil, nil)

	var he *HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusConflict, he.StatusCode)
	assert.Equal(t, "no farrowing on record", he.Body)
}

func TestDoJSON_RelativeWithoutBase(t *testing.T) {
	c := New(0)
	err := c.DoJSON(context.Background(), http.MethodGet, "/health", nil, nil, nil)
	assert.Error(t, err)

	_, err = NewWithBaseURL("::bad", time.Second)
	assert.Error(t, err)
}
