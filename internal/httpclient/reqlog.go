package httpclient

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jonesrussell/govidsearch/internal/logger"
)

// requestIDLength keeps log lines short; 8 hex chars of a UUID is plenty to
// correlate a start event with its terminal event.
const requestIDLength = 8

// RequestLog is the production LifecycleLogger. One instance is scoped to a
// site so every event carries the site name.
type RequestLog struct {
	log      logger.Logger
	siteName string
}

func NewRequestLog(log logger.Logger, siteName string) *RequestLog {
	return &RequestLog{
		log:      log,
		siteName: siteName,
	}
}

func (r *RequestLog) Start(rawURL string, params map[string]string) string {
	requestID := uuid.New().String()[:requestIDLength]

	r.log.Info("Resource site request",
		logger.String("request_id", requestID),
		logger.String("site", r.siteName),
		logger.String("url", fullURL(rawURL, params)),
	)
	return requestID
}

func (r *RequestLog) Success(requestID string, statusCode int, elapsedMs int64, itemCount int) {
	fields := []logger.Field{
		logger.String("request_id", requestID),
		logger.String("site", r.siteName),
		logger.Int("status_code", statusCode),
		logger.Int64("elapsed_ms", elapsedMs),
	}
	if itemCount > 0 {
		fields = append(fields, logger.Int("item_count", itemCount))
	}
	r.log.Info("Resource site request succeeded", fields...)
}

func (r *RequestLog) Timeout(requestID string, timeoutSeconds int, elapsedMs int64) {
	r.log.Warn("Resource site request timed out",
		logger.String("request_id", requestID),
		logger.String("site", r.siteName),
		logger.Int("timeout_seconds", timeoutSeconds),
		logger.Int64("elapsed_ms", elapsedMs),
	)
}

func (r *RequestLog) Error(requestID string, message string, elapsedMs int64, statusCode *int) {
	fields := []logger.Field{
		logger.String("request_id", requestID),
		logger.String("site", r.siteName),
		logger.String("error", message),
		logger.Int64("elapsed_ms", elapsedMs),
	}
	if statusCode != nil {
		fields = append(fields, logger.Int("status_code", *statusCode))
	}
	r.log.Error("Resource site request failed", fields...)
}

// fullURL renders the request target with its query for the start event,
// in stable key order.
func fullURL(rawURL string, params map[string]string) string {
	if len(params) == 0 {
		return rawURL
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(rawURL)
	sb.WriteByte('?')
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(params[k])
	}
	return sb.String()
}
