package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ewastewatch/internal/ports"
)

func TestCheckOrigin(t *testing.T) {
	check := CheckOrigin([]string{"ewastewatch.org", "example.co.uk"}, false)
	local := CheckOrigin(nil, true)

	cases := []struct {
		origin string
		host   string
		fn     func(*http.Request) bool
		want   bool
	}{
		{"", "api.ewastewatch.org", check, true},
		{"https://ewastewatch.org", "api.ewastewatch.org", check, true},
		{"https://maps.ewastewatch.org", "api.ewastewatch.org", check, true},
		{"https://app.example.co.uk", "api.ewastewatch.org", check, true},
		{"https://co.uk", "api.ewastewatch.org", check, false},
		{"https://evil.example", "api.ewastewatch.org", check, false},
		{"https://ewastewatch.org.evil.example", "api.ewastewatch.org", check, false},
		{"http://api.ewastewatch.org:8080", "api.ewastewatch.org:8080", CheckOrigin(nil, false), true},
		{"http://localhost:5173", "localhost:8080", check, false},
		{"http://localhost:5173", "localhost:8080", local, true},
		{"::not a url", "x", check, false},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/ws/dashboard", nil)
		r.Host = tc.host
		if tc.origin != "" {
			r.Header.Set("Origin", tc.origin)
		}
		assert.Equal(t, tc.want, tc.fn(r), "origin %q host %q", tc.origin, tc.host)
	}
}

func TestHubBroadcast(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub(nil)
	go hub.Run(ctx)

	srv := httptest.NewServer(hub.Handler(CheckOrigin(nil, true)))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 5*time.Millisecond)

	hub.Publish(ctx, ports.Event{Type: ports.EventHotspotsUpdated, Payload: []string{"hs-r1_c2"}})
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(msg), ports.EventHotspotsUpdated)
	assert.Contains(t, string(msg), "hs-r1_c2")

	conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestHubRejectsForeignOrigin(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub(nil)
	go hub.Run(ctx)
	srv := httptest.NewServer(hub.Handler(CheckOrigin([]string{"ewastewatch.org"}, false)))
	defer srv.Close()

	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPublishWithoutRunningHubDoesNotBlock(t *testing.T) {
	hub := NewHub(nil)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			hub.Publish(context.Background(), ports.Event{Type: ports.EventReportSubmitted})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked")
	}
}
