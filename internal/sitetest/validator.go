// Package sitetest health-checks a configured resource site by issuing a
// real search with a random keyword and applying anti-bot heuristics to
// the response.
package sitetest

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"strings"

	"github.com/jonesrussell/govidsearch/internal/config"
	"github.com/jonesrussell/govidsearch/internal/httpclient"
	"github.com/jonesrussell/govidsearch/internal/logger"
	"github.com/jonesrussell/govidsearch/internal/models"
)

// SiteLookup resolves a site id regardless of enabled state; disabled sites
// are exactly the ones an operator wants to test before re-enabling.
type SiteLookup interface {
	Get(siteID string) (models.SiteConfig, bool)
}

// Result is one connection test outcome for diagnostic display.
type Result struct {
	Success      bool   `json:"success"`
	StatusCode   *int   `json:"status_code,omitempty"`
	ElapsedMs    int64  `json:"elapsed_ms"`
	ResponseSize int    `json:"response_size,omitempty"`
	Message      string `json:"message"`
	Error        string `json:"error,omitempty"`
	TestKeyword  string `json:"test_keyword"`
}

// Validator runs connection tests with the browser-fingerprint header
// profile so the probe looks like real traffic.
type Validator struct {
	sites   SiteLookup
	client  *http.Client
	headers map[string]string
	cfg     config.ConnectionTestConfig
	log     logger.Logger
}

func NewValidator(sites SiteLookup, headers config.HeaderProfiles, cfg config.ConnectionTestConfig, log logger.Logger) *Validator {
	return &Validator{
		sites:   sites,
		client:  httpclient.NewTransportClient(),
		headers: headers.Test,
		cfg:     cfg,
		log:     log,
	}
}

// TestConnection probes one site. Unknown ids are the caller's mistake and
// return an error; everything the site does wrong lands in the Result.
func (v *Validator) TestConnection(ctx context.Context, siteID string) (Result, error) {
	site, ok := v.sites.Get(siteID)
	if !ok {
		return Result{}, fmt.Errorf("site not found: %s", siteID)
	}

	keyword := v.cfg.Keywords[rand.Intn(len(v.cfg.Keywords))]

	executor := httpclient.NewExecutorWithClient(v.client, httpclient.NewRequestLog(v.log, site.Name))
	params := httpclient.BuildParams(map[string]any{
		site.ActionParam: "detail",
		site.SearchParam: keyword,
	})

	outcome := executor.Execute(ctx, site.BaseURL, params, v.headers, site.Timeout)
	if !outcome.Success {
		return Result{
			ElapsedMs:   outcome.ElapsedMs,
			Error:       outcome.Error,
			Message:     "connection failed: " + outcome.Error,
			TestKeyword: keyword,
		}, nil
	}

	if reason := v.validatePayload(outcome); reason != "" {
		return Result{
			ElapsedMs:   outcome.ElapsedMs,
			Error:       reason,
			Message:     "connection failed: " + reason,
			TestKeyword: keyword,
		}, nil
	}

	return Result{
		Success:      true,
		StatusCode:   outcome.StatusCode,
		ElapsedMs:    outcome.ElapsedMs,
		ResponseSize: outcome.ResponseSize,
		Message:      "connection OK, API responded normally",
		TestKeyword:  keyword,
	}, nil
}

// validatePayload applies the response heuristics in order and returns the
// first failure reason, or "" when the payload looks like a real API answer.
func (v *Validator) validatePayload(outcome httpclient.Outcome) string {
	if outcome.Payload == nil {
		return "empty response payload"
	}

	if outcome.ResponseSize < v.cfg.MinResponseSize {
		return fmt.Sprintf("response too small (%d bytes)", outcome.ResponseSize)
	}

	text := strings.ToLower(fmt.Sprint(outcome.Payload))
	for _, indicator := range v.cfg.InvalidIndicators {
		if strings.Contains(text, strings.ToLower(indicator)) {
			return "anti-bot indicator detected: " + indicator
		}
	}

	payload, ok := outcome.Payload.(map[string]any)
	if !ok {
		// Non-mapping payloads without indicators pass; plain-HTML anti-bot
		// pages are caught only by the indicator list above.
		return ""
	}

	if code, present := payload["code"]; present {
		if !v.codeAllowed(code) {
			return fmt.Sprintf("API error code: %v", code)
		}
	}

	if _, ok := payload["data"]; ok {
		return ""
	}
	if _, ok := payload["list"]; ok {
		return ""
	}
	return "response missing data fields"
}

func (v *Validator) codeAllowed(code any) bool {
	n, ok := code.(float64)
	if !ok {
		return false
	}
	for _, valid := range v.cfg.ValidResponseCodes {
		if int(n) == valid {
			return true
		}
	}
	return false
}
