// Command control runs the control plane process: matchmaking, room
// bookkeeping, and the heartbeat intake every room process reports to.
// Grounded on control/mod.rs's axum router, ported onto gorilla/mux.
package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"sphereslither.io/internal/config"
	"sphereslither.io/internal/control/httpapi"
	"sphereslither.io/internal/control/provision"
	"sphereslither.io/internal/control/registry"
)

const (
	defaultTokenTTL          = 30 * time.Second
	defaultMaxHumanPlayers   = 40
	localProvisionerBasePort = 9001
)

func main() {
	cfg, err := config.LoadControlConfig()
	if err != nil {
		log.Fatalf("[control] config: %v", err)
	}
	log.SetFlags(log.Ldate | log.Ltime)
	log.Printf("[control] starting on port %d", cfg.Port)

	reg := registry.New()
	prov := provision.NewLocal(localProvisionerBasePort)

	router := httpapi.NewRouter(httpapi.Config{
		Registry:        reg,
		Provisioner:     prov,
		RoomTokenSecret: cfg.RoomTokenSecret,
		TokenTTL:        defaultTokenTTL,
		MaxHumanPlayers: defaultMaxHumanPlayers,
		HeartbeatToken:  cfg.ProxySecret,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("[control] listen: %v", err)
	}
}
