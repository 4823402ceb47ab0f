// Package upstream holds the HTTP plumbing shared by the market data provider clients.
package upstream

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-market-cache/internal/apierror"
	"go-market-cache/internal/metrics"
)

// maxBodyBytes bounds how much of a provider response is read
const maxBodyBytes = 16 << 20

// Requester executes provider requests and turns non-2xx responses into *apierror.UpstreamError
type Requester struct {
	client   *http.Client
	provider string
	logger   *zap.Logger
}

// NewRequester creates a requester with its own client timeout
func NewRequester(provider string, timeout time.Duration, logger *zap.Logger) *Requester {
	return &Requester{
		client:   &http.Client{Timeout: timeout},
		provider: provider,
		logger:   logger,
	}
}

func (r *Requester) Provider() string {
	return r.provider
}

// Do sends req and returns the response body of a 2xx response.
// The endpoint label is used for metrics and logs only.
func (r *Requester) Do(req *http.Request, endpoint string) ([]byte, error) {
	start := time.Now()
	status := "error"
	defer func() {
		metrics.ObserveUpstreamRequest(r.provider, endpoint, status, time.Since(start))
	}()

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Upstream request failed",
			zap.String("provider", r.provider),
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return nil, fmt.Errorf("%s request failed: %w", r.provider, err)
	}
	defer resp.Body.Close()

	status = strconv.Itoa(resp.StatusCode)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", r.provider, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		upstreamErr := &apierror.UpstreamError{
			Provider:   r.provider,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body, resp.StatusCode),
		}
		r.logger.Warn("Upstream returned non-2xx status",
			zap.String("provider", r.provider),
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("message", upstreamErr.Message))
		return nil, upstreamErr
	}

	return body, nil
}

// errorMessage extracts a readable message from the error body shapes used by the providers
func errorMessage(body []byte, statusCode int) string {
	var shaped struct {
		Status *struct {
			ErrorMessage string `json:"error_message"`
		} `json:"status"`
		Msg   string `json:"msg"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &shaped); err == nil {
		switch {
		case shaped.Status != nil && shaped.Status.ErrorMessage != "":
			return shaped.Status.ErrorMessage
		case shaped.Msg != "":
			return shaped.Msg
		case shaped.Error != "":
			return shaped.Error
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 {
		return text
	}
	return http.StatusText(statusCode)
}
