package heartbeat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopSendsAuthenticatedStats(t *testing.T) {
	received := make(chan Stats, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		var stats Stats
		require.NoError(t, json.NewDecoder(r.Body).Decode(&stats))
		received <- stats
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	calls := 0
	go Loop(ctx, srv.URL, "secret-token", func() Stats {
		calls++
		return Stats{RoomID: "room-1", PlayerCount: calls, TotalSessions: calls}
	})

	select {
	case stats := <-received:
		assert.Equal(t, "room-1", stats.RoomID)
	case <-time.After(3 * time.Second):
		t.Fatal("heartbeat never arrived")
	}
}

func TestTrimTrailingSlash(t *testing.T) {
	assert.Equal(t, "http://x", trimTrailingSlash("http://x///"))
	assert.Equal(t, "http://x", trimTrailingSlash("http://x"))
}
