// Package httpapi exposes the control plane's HTTP surface: health,
// matchmaking, and the room-heartbeat intake. Grounded on
// room_runtime/mod.rs and control/mod.rs's axum Router shape, translated
// to gorilla/mux plus a permissive CORS middleware.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"sphereslither.io/internal/control/provision"
	"sphereslither.io/internal/control/registry"
	"sphereslither.io/internal/control/token"
)

// Config holds the control plane's wiring.
type Config struct {
	Registry        *registry.Registry
	Provisioner     provision.Provisioner
	RoomTokenSecret string
	TokenTTL        time.Duration
	MaxHumanPlayers int
	HeartbeatToken  string
}

// NewRouter builds the control plane's HTTP router.
func NewRouter(cfg Config) *mux.Router {
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.HandleFunc("/api/health", handleHealth).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/matchmake", handleMatchmake(cfg)).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/internal/room-heartbeat", handleHeartbeat(cfg)).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/rooms", handleRooms(cfg)).Methods(http.MethodGet, http.MethodOptions)
	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type matchmakeResponse struct {
	RoomID    string `json:"roomId"`
	RoomToken string `json:"roomToken"`
	Address   string `json:"address"`
	Capacity  int    `json:"capacity"`
	ExpiresAt int64  `json:"expiresAt"`
}

func handleMatchmake(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room, err := provision.EnsureRoom(r.Context(), cfg.Registry, cfg.Provisioner, cfg.MaxHumanPlayers)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"ok": false, "error": err.Error()})
			return
		}

		expiresAt := time.Now().Add(cfg.TokenTTL).UnixMilli()
		tok, err := token.Sign(token.Claims{
			RoomID:      room.ID,
			Origin:      originOf(r),
			ExpiresAtMS: expiresAt,
		}, cfg.RoomTokenSecret)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"ok": false, "error": err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, matchmakeResponse{
			RoomID:    room.ID,
			RoomToken: tok,
			Address:   room.Address,
			Capacity:  room.MaxHumanPlayers,
			ExpiresAt: expiresAt,
		})
	}
}

func originOf(r *http.Request) string {
	if origin := r.Header.Get("Origin"); origin != "" {
		return origin
	}
	return r.Host
}

type heartbeatRequest struct {
	RoomID        string `json:"roomId"`
	PlayerCount   int    `json:"playerCount"`
	TotalSessions int    `json:"totalSessions"`
}

func handleHeartbeat(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.HeartbeatToken != "" {
			auth := r.Header.Get("Authorization")
			if !strings.EqualFold(strings.TrimPrefix(auth, "Bearer "), cfg.HeartbeatToken) {
				writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"ok": false, "error": "unauthorized"})
				return
			}
		}

		var req heartbeatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"ok": false, "error": "bad request"})
			return
		}

		if !cfg.Registry.Heartbeat(req.RoomID, req.PlayerCount, req.TotalSessions) {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{"ok": false, "error": "unknown room"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func handleRooms(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room, ok := cfg.Registry.PickAvailable()
		if !ok {
			writeJSON(w, http.StatusOK, map[string]interface{}{"rooms": []registry.Room{}})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"rooms": []registry.Room{room}})
	}
}
