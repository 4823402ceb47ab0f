package cache

import (
	"bytes"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"

	"go-market-cache/internal/interfaces"
)

// Ensure KeyBuilderImpl implements interfaces.KeyBuilder
var _ interfaces.KeyBuilder = (*KeyBuilderImpl)(nil)

// KeyBuilderImpl implements the KeyBuilder interface
type KeyBuilderImpl struct{}

// NewKeyBuilder creates a new KeyBuilder instance
func NewKeyBuilder() interfaces.KeyBuilder {
	return &KeyBuilderImpl{}
}

// Build creates a cache key for a single procedure call.
// The key has the form "<operation>:<md5 of canonical params JSON>".
func (kb *KeyBuilderImpl) Build(operation string, params interface{}) (string, error) {
	if operation == "" {
		return "", errors.New("operation cannot be empty")
	}

	paramsJSON, err := canonicalJSON(params)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize params for %s: %w", operation, err)
	}

	hasher := md5.New()
	hasher.Write(paramsJSON)

	return fmt.Sprintf("%s:%x", operation, hasher.Sum(nil)), nil
}

// canonicalJSON round-trips params through a generic value so that struct field
// order and map iteration order never leak into the key. encoding/json writes map
// keys sorted, and UseNumber keeps numbers byte-for-byte.
func canonicalJSON(params interface{}) ([]byte, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var generic interface{}
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}

	return json.Marshal(generic)
}
