// Package heartbeat implements the room process's periodic self-report
// to the control plane. Grounded on room_runtime/mod.rs's 2-second
// interval.Client POST loop.
package heartbeat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Interval is how often a room process reports in. Matches the 2-second
// cadence of the reference room_heartbeat_loop.
const Interval = 2 * time.Second

// Stats is the payload a room process reports every Interval.
type Stats struct {
	RoomID        string `json:"roomId"`
	PlayerCount   int    `json:"playerCount"`
	TotalSessions int    `json:"totalSessions"`
}

// StatsFunc produces a fresh Stats snapshot on demand.
type StatsFunc func() Stats

// Loop posts Stats to controlPlaneURL + "/internal/room-heartbeat" every
// Interval until ctx is canceled, bearer-authenticated with token. A
// failed send is logged and not retried; the next attempt is the next
// tick. A limiter caps sends at one per Interval.
func Loop(ctx context.Context, controlPlaneURL, token string, stats StatsFunc) {
	endpoint := trimTrailingSlash(controlPlaneURL) + "/internal/room-heartbeat"
	client := &http.Client{Timeout: 5 * time.Second}
	limiter := rate.NewLimiter(rate.Every(Interval), 1)
	ticker := time.NewTicker(Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !limiter.Allow() {
				continue
			}
			if err := send(ctx, client, endpoint, token, stats()); err != nil {
				log.Printf("[heartbeat] send failed: %v", err)
			}
		}
	}
}

func send(ctx context.Context, client *http.Client, endpoint, token string, stats Stats) error {
	body, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("heartbeat: control plane returned %d", resp.StatusCode)
	}
	return nil
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
