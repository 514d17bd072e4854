package shop0

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	go_json "github.com/goccy/go-json"
)

// deprecationAlertDelay is how long an identical notice stays muted.
const deprecationAlertDelay = 5 * time.Minute

type deprecationCache struct {
	mu     sync.Mutex
	logged map[string]time.Time
	now    func() time.Time
}

func newDeprecationCache(now func() time.Time) *deprecationCache {
	return &deprecationCache{
		logged: make(map[string]time.Time),
		now:    now,
	}
}

// shouldLog records a sighting of (message, path) and reports whether it is
// due for logging: first sighting, or the alert delay has passed since the last one logged.
func (c *deprecationCache) shouldLog(message, path string) bool {
	key := deprecationKey(message, path)
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if last, ok := c.logged[key]; ok && now.Sub(last) < deprecationAlertDelay {
		return false
	}
	c.logged[key] = now
	return true
}

func deprecationKey(message, path string) string {
	payload, err := go_json.Marshal(struct {
		Message string `json:"message"`
		Path    string `json:"path"`
	}{Message: message, Path: path})
	if err != nil {
		payload = []byte(message + "\x00" + path)
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
