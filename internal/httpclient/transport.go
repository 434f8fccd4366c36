package httpclient

import (
	"net/http"
	"time"
)

const (
	maxIdleConns          = 100
	maxIdleConnsPerHost   = 10
	idleConnTimeout       = 90 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	expectContinueTimeout = 1 * time.Second
)

// NewTransportClient builds the shared outbound client. No client-level
// timeout: the per-call deadline in Execute is the only bound, so one slow
// site's limit never leaks into another's.
func NewTransportClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:          maxIdleConns,
			MaxIdleConnsPerHost:   maxIdleConnsPerHost,
			IdleConnTimeout:       idleConnTimeout,
			TLSHandshakeTimeout:   tlsHandshakeTimeout,
			ExpectContinueTimeout: expectContinueTimeout,
		},
	}
}
