package httpserver

import (
	"encoding/json"
	"time"

	"go-market-cache/internal/apierror"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    apierror.Code `json:"code"`
	Message string        `json:"message"`
}

type HealthResponse struct {
	Status   string    `json:"status"`
	Time     time.Time `json:"time"`
	Database string    `json:"database,omitempty"`
}

// CacheDeleteRequest names the fast-cache entry to drop, either by key or by
// the procedure call that produced it. Input must be the complete validated
// input, defaults included.
type CacheDeleteRequest struct {
	Key       string          `json:"key,omitempty"`
	Procedure string          `json:"procedure,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
}

type CacheDeleteResponse struct {
	Success bool   `json:"success"`
	Key     string `json:"key"`
}
