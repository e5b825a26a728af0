package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// JSONStore keeps JSON-encoded values of type V under one namespace of a
// Client ("<prefix>:<namespace>:<key>").
type JSONStore[V any] struct {
	client    *Client
	namespace string
}

// NewJSONStore creates a store for values of type V.
func NewJSONStore[V any](client *Client, namespace string) *JSONStore[V] {
	return &JSONStore[V]{client: client, namespace: namespace}
}

// Key returns the full redis key for key.
func (s *JSONStore[V]) Key(key string) string {
	return s.client.Key(s.namespace, key)
}

// Get decodes the value at key. found is false when the key is missing or
// has expired.
func (s *JSONStore[V]) Get(ctx context.Context, key string) (v V, found bool, err error) {
	raw, ok, err := s.client.getBytes(ctx, s.Key(key))
	if err != nil || !ok {
		if err != nil {
			err = fmt.Errorf("redis get %s: %w", s.Key(key), err)
		}
		return v, false, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("redis decode %s: %w", s.Key(key), err)
	}
	return v, true, nil
}

// Put encodes v and stores it for ttl.
func (s *JSONStore[V]) Put(ctx context.Context, key string, v V, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("redis encode %s: %w", s.Key(key), err)
	}
	if err := s.client.setBytes(ctx, s.Key(key), raw, ttl); err != nil {
		return fmt.Errorf("redis put %s: %w", s.Key(key), err)
	}
	return nil
}

// Remaining reports how long key has left. Zero means missing or expired.
func (s *JSONStore[V]) Remaining(ctx context.Context, key string) (time.Duration, error) {
	d, err := s.client.ttl(ctx, s.Key(key))
	if err != nil {
		return 0, fmt.Errorf("redis ttl %s: %w", s.Key(key), err)
	}
	return max(d, 0), nil
}

// Delete removes key.
func (s *JSONStore[V]) Delete(ctx context.Context, key string) error {
	if err := s.client.del(ctx, s.Key(key)); err != nil {
		return fmt.Errorf("redis delete %s: %w", s.Key(key), err)
	}
	return nil
}
