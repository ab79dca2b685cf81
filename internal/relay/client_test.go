package relay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayload() *Payload {
	return &Payload{
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		Message:    "Hello",
		Newsletter: true,
		Subject:    "New Contact Form Submission",
		Captcha:    CaptchaDisabled,
		Template:   TemplateTable,
	}
}

func TestSendPostsJSON(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ajax/owner@example.com", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Ada Lovelace", body["name"])
		assert.Equal(t, "ada@example.com", body["email"])
		assert.Equal(t, "Hello", body["message"])
		assert.Equal(t, true, body["newsletter"])
		assert.Equal(t, "New Contact Form Submission", body["_subject"])
		assert.Equal(t, "false", body["_captcha"])
		assert.Equal(t, "table", body["_template"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":"true","message":"The form was submitted successfully."}`))
	}))
	defer srv.Close()

	c := NewClient("owner@example.com", WithBaseURL(srv.URL+"/ajax/"))
	resp, err := c.Send(context.Background(), testPayload())

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSendServiceFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"success false with message", http.StatusOK, `{"success":false,"message":"X"}`, "X"},
		{"success false without message", http.StatusOK, `{"success":"false"}`, ""},
		{"missing success flag", http.StatusOK, `{"message":"odd"}`, "odd"},
		{"non 2xx with success true", http.StatusInternalServerError, `{"success":true}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient("owner@example.com", WithBaseURL(srv.URL))
			_, err := c.Send(context.Background(), testPayload())

			var se *ServiceError
			require.True(t, errors.As(err, &se), "expected ServiceError, got %v", err)
			assert.Equal(t, tt.status, se.Status)
			assert.Equal(t, tt.message, se.Message)
			assert.True(t, IsServiceError(err))
			assert.False(t, IsTransportError(err))
		})
	}
}

func TestSendTransportFailures(t *testing.T) {
	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>not json</html>"))
		}))
		defer srv.Close()

		_, err := NewClient("owner@example.com", WithBaseURL(srv.URL)).Send(context.Background(), testPayload())
		var te *TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, "decode", te.Op)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := NewClient("owner@example.com", WithBaseURL(url)).Send(context.Background(), testPayload())
		var te *TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, "request", te.Op)
		assert.True(t, IsTransportError(err))
	})
}

func TestSendWithoutOwner(t *testing.T) {
	_, err := NewClient("  ").Send(context.Background(), testPayload())
	assert.ErrorIs(t, err, ErrNoOwner)
}

func TestEndpoint(t *testing.T) {
	c := NewClient("pranay@ai360.com.au")
	assert.Equal(t, "https://formsubmit.co/ajax/pranay@ai360.com.au", c.Endpoint())
}
