// Command room runs a single game room process: the tick loop, the
// WebSocket endpoint clients connect to, and (when configured) the
// heartbeat loop reporting occupancy back to the control plane. Grounded
// on the teacher's server/main.go flags-then-config shape, sourced from
// environment variables per the room process's external contract.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"sphereslither.io/internal/config"
	"sphereslither.io/internal/control/heartbeat"
	"sphereslither.io/internal/control/token"
	"sphereslither.io/internal/room"
	"sphereslither.io/internal/transport"
)

func main() {
	cfg, err := config.LoadRoomConfig()
	if err != nil {
		log.Fatalf("[room] config: %v", err)
	}
	log.SetFlags(log.Ldate | log.Ltime)
	log.Printf("[room] starting room %s on port %d (max players %d)", cfg.RoomID, cfg.Port, cfg.MaxHumanPlayers)

	seed := uint32(time.Now().UnixNano())
	state := room.NewState(seed)
	hub := room.NewHub(state)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.ControlPlaneURL != "" {
		go heartbeat.Loop(ctx, cfg.ControlPlaneURL, cfg.RoomHeartbeatToken, func() heartbeat.Stats {
			humanCount, total := state.Stats()
			return heartbeat.Stats{
				RoomID:        cfg.RoomID,
				PlayerCount:   humanCount,
				TotalSessions: total,
			}
		})
	}

	go tickLoop(ctx, state, hub)

	router := mux.NewRouter()
	router.HandleFunc("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	}).Methods(http.MethodGet)

	router.HandleFunc("/api/room/{room}", func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["room"] != cfg.RoomID {
			http.Error(w, "unknown room", http.StatusNotFound)
			return
		}
		if cfg.RoomProxySecret != "" && r.Header.Get("X-Room-Proxy-Secret") != cfg.RoomProxySecret {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if cfg.RoomTokenSecret != "" {
			if !authorized(r, cfg.RoomTokenSecret, cfg.RoomID) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		sessionID := uuid.NewString()
		s := transport.Upgrade(sessionID, w, r, hub)
		if s != nil {
			hub.Drop(s)
		}
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		log.Printf("[room] shutting down")
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("[room] listen: %v", err)
	}
}

// tickLoop advances the simulation at config.TickMS resolution until ctx is
// canceled, pumping each session's latest input into the room right before
// every tick and broadcasting the resulting state right after.
func tickLoop(ctx context.Context, state *room.State, hub *room.Hub) {
	ticker := time.NewTicker(time.Duration(config.TickMS) * time.Millisecond)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dtMS := now.Sub(last).Milliseconds()
			last = now
			nowMS := now.UnixMilli()

			hub.PumpInputs(nowMS)
			state.Tick(nowMS, dtMS)
			hub.Broadcast()
		}
	}
}

// authorized verifies the room admission token a client is expected to pass
// as a "token" query parameter, minted by the control plane's matchmake
// endpoint.
func authorized(r *http.Request, secret, roomID string) bool {
	tok := r.URL.Query().Get("token")
	if tok == "" {
		return false
	}
	claims, err := token.Verify(tok, secret)
	if err != nil {
		return false
	}
	if claims.RoomID != roomID {
		return false
	}
	return claims.ExpiresAtMS > time.Now().UnixMilli()
}
