package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sphereslither.io/internal/control/provision"
	"sphereslither.io/internal/control/registry"
	"sphereslither.io/internal/control/token"
)

func testConfig() Config {
	return Config{
		Registry:        registry.New(),
		Provisioner:     provision.NewLocal(9500),
		RoomTokenSecret: "test-secret",
		TokenTTL:        time.Minute,
		MaxHumanPlayers: 10,
		HeartbeatToken:  "hb-secret",
	}
}

func TestHandleHealth(t *testing.T) {
	router := NewRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleMatchmakeProvisionsAndSignsToken(t *testing.T) {
	cfg := testConfig()
	router := NewRouter(cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/matchmake", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp matchmakeResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.RoomID)
	assert.NotEmpty(t, resp.Address)

	claims, err := token.Verify(resp.RoomToken, cfg.RoomTokenSecret)
	require.NoError(t, err)
	assert.Equal(t, resp.RoomID, claims.RoomID)
}

func TestHandleHeartbeatRequiresBearerToken(t *testing.T) {
	cfg := testConfig()
	cfg.Registry.Register(registry.Room{ID: "room-1", MaxHumanPlayers: 10})
	router := NewRouter(cfg)

	body, _ := json.Marshal(heartbeatRequest{RoomID: "room-1", PlayerCount: 2, TotalSessions: 2})
	req := httptest.NewRequest(http.MethodPost, "/internal/room-heartbeat", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req2 := httptest.NewRequest(http.MethodPost, "/internal/room-heartbeat", bytes.NewReader(body))
	req2.Header.Set("Authorization", "Bearer hb-secret")
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusOK, w2.Code)

	room, ok := cfg.Registry.Get("room-1")
	require.True(t, ok)
	assert.Equal(t, 2, room.PlayerCount)
}

func TestHandleRoomsReturnsAvailable(t *testing.T) {
	cfg := testConfig()
	cfg.Registry.Register(registry.Room{ID: "room-1", MaxHumanPlayers: 10, PlayerCount: 1})
	router := NewRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "room-1")
}
