package client

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// loggingTransport оборачивает RoundTripper и логирует исходящие запросы.
type loggingTransport struct {
	next   http.RoundTripper
	logger *zap.Logger
}

func newLoggingTransport(next http.RoundTripper, logger *zap.Logger) *loggingTransport {
	return &loggingTransport{next: next, logger: logger}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(start)
	if err != nil {
		t.logger.Error("HTTP Request",
			zap.String("method", req.Method),
			zap.String("uri", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	t.logger.Info("HTTP Request",
		zap.String("method", req.Method),
		zap.String("uri", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration),
	)
	return resp, nil
}
