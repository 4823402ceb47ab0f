package httpserver

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"go-market-cache/internal/apierror"
)

// requireAdmin rejects requests without the admin bearer token
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if s.adminToken == "" || !ok || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			s.writeError(w, apierror.Unauthorized("invalid admin token"))
			return
		}
		next(w, r)
	}
}

// handleCacheDelete drops one fast-cache entry
func (s *Server) handleCacheDelete(w http.ResponseWriter, r *http.Request) {
	raw, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, apierror.BadRequest("failed to read request body: %v", err))
		return
	}

	var req CacheDeleteRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		s.writeError(w, apierror.BadRequest("Invalid request"))
		return
	}

	key := req.Key
	if key == "" {
		if req.Procedure == "" {
			s.writeError(w, apierror.BadRequest("Missing required fields: key or procedure"))
			return
		}
		key, err = s.keyForCall(req.Procedure, req.Input)
		if err != nil {
			s.writeError(w, apierror.BadRequest("failed to derive cache key: %v", err))
			return
		}
	}

	deleted := s.fastCache.Delete(r.Context(), key)
	s.logger.Info("Admin cache delete", zap.String("key", key), zap.Bool("success", deleted))

	s.writeResponse(w, &CacheDeleteResponse{Success: deleted, Key: key})
}

func (s *Server) keyForCall(procedure string, input json.RawMessage) (string, error) {
	var params interface{}
	if trimmed := bytes.TrimSpace(input); len(trimmed) > 0 {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(&params); err != nil {
			return "", err
		}
	}
	return s.keys.Build(procedure, params)
}
