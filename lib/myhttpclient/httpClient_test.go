package myhttpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHTTPClient(t *testing.T) {

	t.Run("Sends headers and body", func(t *testing.T) {
		// setup
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "abc", r.Header.Get("X-Session-ID"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, `{"a":1}`, string(body))
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"data":{}}`))
		}))
		defer server.Close()
		sut := New("test", time.Second)

		// when
		status, body, err := sut.Send(context.TODO(), http.MethodPost, server.URL, map[string]string{"X-Session-ID": "abc"}, []byte(`{"a":1}`))

		// then
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, status)
		assert.Equal(t, `{"data":{}}`, string(body))
	})

	t.Run("Server errors reach the caller", func(t *testing.T) {
		// setup
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"error":"upstream down"}`))
		}))
		defer server.Close()
		sut := New("test", time.Second)

		// when
		status, body, err := sut.Send(context.TODO(), http.MethodGet, server.URL, nil, nil)

		// then
		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, status)
		assert.Equal(t, `{"error":"upstream down"}`, string(body))
	})

	t.Run("Breaker opens after consecutive failures", func(t *testing.T) {
		// setup
		calls := atomic.Int32{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()
		sut := New("test", time.Second)

		// given
		for i := 0; i < consecutiveFailuresToTrip; i++ {
			sut.Send(context.TODO(), http.MethodGet, server.URL, nil, nil)
		}

		// when
		_, _, err := sut.Send(context.TODO(), http.MethodGet, server.URL, nil, nil)

		// then
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.Equal(t, int32(consecutiveFailuresToTrip), calls.Load())
	})
}
