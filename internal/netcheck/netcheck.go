// Package netcheck probes network connectivity so the UI can surface an
// offline indicator. Connectivity only affects the indicator; all bookmark
// data is local.
package netcheck

import (
	"net/http"
	"time"
)

// DefaultProbeURL answers HTTP 204 and is the conventional connectivity
// beacon.
const DefaultProbeURL = "https://connectivitycheck.gstatic.com/generate_204"

// DefaultInterval is how often the TUI re-probes.
const DefaultInterval = 30 * time.Second

// Checker probes a single URL to decide online/offline.
type Checker struct {
	client *http.Client
	url    string
}

// New creates a Checker for the given probe URL with the given timeout.
func New(url string, timeout time.Duration) *Checker {
	return &Checker{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		url: url,
	}
}

// Online reports whether the probe endpoint is reachable. Any HTTP
// response counts as online; only transport failure means offline.
func (c *Checker) Online() bool {
	req, err := http.NewRequest(http.MethodHead, c.url, nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}
