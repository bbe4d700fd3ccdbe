package remote

import (
	"context"
	"net/http"
	"time"
)

const (
	probeTTL     = 5 * time.Second
	probeTimeout = 2 * time.Second
)

// Offline reports whether the head office is currently unreachable. The
// result is cached for a few seconds so resolution paths do not pay an
// extra round trip per call.
func (c *Client) Offline() bool {
	c.mu.Lock()
	if time.Since(c.lastProbe) < probeTTL {
		off := c.lastOffline
		c.mu.Unlock()
		return off
	}
	c.mu.Unlock()

	off := !c.probe()

	c.mu.Lock()
	c.lastProbe = time.Now()
	c.lastOffline = off
	c.mu.Unlock()
	return off
}

// probe returns true when the head office answered at all. Any HTTP status
// counts: a 500 still means the link is up.
func (c *Client) probe() bool {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}
