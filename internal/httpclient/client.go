// Package httpclient performs the single outbound call a search or
// connection test makes against a resource site, classifying every failure
// mode into a returned Outcome instead of an error.
package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Outcome is the result of one outbound call. Payload is set iff Success;
// Error is set iff not. StatusCode is nil when the failure happened before
// an HTTP response existed (timeout, connection refused).
type Outcome struct {
	Success      bool
	StatusCode   *int
	ElapsedMs    int64
	ResponseSize int
	Payload      any
	Error        string
}

// LifecycleLogger receives the four request lifecycle events. Start returns
// the request id threaded through to exactly one terminal event. The elapsed
// arithmetic is the executor's job, not the logger's.
type LifecycleLogger interface {
	Start(url string, params map[string]string) string
	Success(requestID string, statusCode int, elapsedMs int64, itemCount int)
	Timeout(requestID string, timeoutSeconds int, elapsedMs int64)
	Error(requestID string, message string, elapsedMs int64, statusCode *int)
}

// Executor issues one GET per call over a shared transport. Per-call
// deadlines come from the site's configured timeout, not the client.
type Executor struct {
	client    *http.Client
	lifecycle LifecycleLogger
}

func NewExecutor(lifecycle LifecycleLogger) *Executor {
	return NewExecutorWithClient(NewTransportClient(), lifecycle)
}

// NewExecutorWithClient shares an existing client between executors; the
// search service builds one executor per call to bind the site name into
// the lifecycle events without paying for a transport each time.
func NewExecutorWithClient(client *http.Client, lifecycle LifecycleLogger) *Executor {
	return &Executor{
		client:    client,
		lifecycle: lifecycle,
	}
}

// Execute performs exactly one HTTP GET against baseURL with the given
// query params and headers, bounded by timeoutSeconds. All failures are
// represented in the Outcome; nothing escapes as an error. Exactly one
// lifecycle sequence (start then one terminal event) is emitted.
func (e *Executor) Execute(ctx context.Context, baseURL string, params map[string]string, headers map[string]string, timeoutSeconds int) Outcome {
	start := time.Now()
	requestID := e.lifecycle.Start(baseURL, params)

	elapsed := func() int64 { return time.Since(start).Milliseconds() }

	fail := func(msg string, statusCode *int) Outcome {
		ms := elapsed()
		e.lifecycle.Error(requestID, msg, ms, statusCode)
		return Outcome{Error: msg, StatusCode: statusCode, ElapsedMs: ms}
	}

	if timeoutSeconds <= 0 {
		timeoutSeconds = 15
	}
	callCtx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, baseURL, http.NoBody)
	if err != nil {
		return fail(fmt.Sprintf("invalid request: %v", err), nil)
	}

	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	req.URL.RawQuery = query.Encode()
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			ms := elapsed()
			msg := fmt.Sprintf("request timed out (%ds)", timeoutSeconds)
			e.lifecycle.Timeout(requestID, timeoutSeconds, ms)
			return Outcome{Error: msg, ElapsedMs: ms}
		}
		return fail(fmt.Sprintf("network error: %v", err), nil)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			ms := elapsed()
			e.lifecycle.Timeout(requestID, timeoutSeconds, ms)
			return Outcome{Error: fmt.Sprintf("request timed out (%ds)", timeoutSeconds), ElapsedMs: ms}
		}
		return fail(fmt.Sprintf("network error: %v", err), nil)
	}

	status := resp.StatusCode
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		out := fail(fmt.Sprintf("HTTP error: %d", status), &status)
		out.ResponseSize = len(body)
		return out
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		out := fail(fmt.Sprintf("invalid JSON response: %v", err), &status)
		out.ResponseSize = len(body)
		return out
	}

	ms := elapsed()
	e.lifecycle.Success(requestID, status, ms, 0)
	return Outcome{
		Success:      true,
		StatusCode:   &status,
		ElapsedMs:    ms,
		ResponseSize: len(body),
		Payload:      payload,
	}
}

// BuildParams flattens a parameter mapping into request query values,
// dropping nil entries so no empty parameters reach the site.
func BuildParams(mapping map[string]any) map[string]string {
	params := make(map[string]string, len(mapping))
	for k, v := range mapping {
		if v == nil {
			continue
		}
		params[k] = fmt.Sprint(v)
	}
	return params
}
