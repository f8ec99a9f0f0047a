package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// RoomConfig is the environment-bound configuration for a single room
// process, per the room's external interface contract.
type RoomConfig struct {
	RoomID             string
	MaxHumanPlayers    int
	Port               int
	ControlPlaneURL    string
	RoomHeartbeatToken string
	RoomProxySecret    string
	RoomTokenSecret    string // optional; empty disables token verification
	LogFormat          string // "json" or "text"
}

// LoadRoomConfig builds a RoomConfig from environment variables using
// viper, defaults-then-override in the same shape the teacher used for
// its JSON-file-then-flag config, but sourced from env vars per the
// room process's external interface.
func LoadRoomConfig() (RoomConfig, error) {
	v := viper.New()
	v.SetDefault("ROOM_ID", "local")
	v.SetDefault("MAX_HUMAN_PLAYERS", 40)
	v.SetDefault("PORT", 8080)
	v.SetDefault("CONTROL_PLANE_URL", "")
	v.SetDefault("ROOM_HEARTBEAT_TOKEN", "")
	v.SetDefault("ROOM_PROXY_SECRET", "")
	v.SetDefault("ROOM_TOKEN_SECRET", "")
	v.SetDefault("LOG_FORMAT", "text")
	v.AutomaticEnv()

	cfg := RoomConfig{
		RoomID:             v.GetString("ROOM_ID"),
		MaxHumanPlayers:    v.GetInt("MAX_HUMAN_PLAYERS"),
		Port:               v.GetInt("PORT"),
		ControlPlaneURL:    v.GetString("CONTROL_PLANE_URL"),
		RoomHeartbeatToken: v.GetString("ROOM_HEARTBEAT_TOKEN"),
		RoomProxySecret:    v.GetString("ROOM_PROXY_SECRET"),
		RoomTokenSecret:    v.GetString("ROOM_TOKEN_SECRET"),
		LogFormat:          v.GetString("LOG_FORMAT"),
	}
	if cfg.MaxHumanPlayers <= 0 {
		return cfg, fmt.Errorf("config: MAX_HUMAN_PLAYERS must be positive, got %d", cfg.MaxHumanPlayers)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("config: PORT out of range: %d", cfg.Port)
	}
	return cfg, nil
}

// ControlConfig is the environment-bound configuration for the control
// plane process.
type ControlConfig struct {
	Port              int
	ProxySecret       string
	HeartbeatTimeout  time.Duration
	RoomTokenSecret   string
	LogFormat         string
}

// LoadControlConfig builds a ControlConfig from environment variables.
func LoadControlConfig() (ControlConfig, error) {
	v := viper.New()
	v.SetDefault("PORT", 9090)
	v.SetDefault("ROOM_PROXY_SECRET", "")
	v.SetDefault("ROOM_TOKEN_SECRET", "")
	v.SetDefault("HEARTBEAT_TIMEOUT_MS", 10000)
	v.SetDefault("LOG_FORMAT", "text")
	v.AutomaticEnv()

	cfg := ControlConfig{
		Port:             v.GetInt("PORT"),
		ProxySecret:      v.GetString("ROOM_PROXY_SECRET"),
		RoomTokenSecret:  v.GetString("ROOM_TOKEN_SECRET"),
		HeartbeatTimeout: time.Duration(v.GetInt("HEARTBEAT_TIMEOUT_MS")) * time.Millisecond,
		LogFormat:        v.GetString("LOG_FORMAT"),
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("config: PORT out of range: %d", cfg.Port)
	}
	return cfg, nil
}
