package graph

import (
	"context"
	"errors"
)

// Client is the minimal contract the repository needs from the underlying
// graph store. The detection core never touches this directly; it goes
// through the repository so it can be tested against MemoryClient.
type Client interface {
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error)
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result is a simplified query response.
type Result struct {
	Records []Record
}

// Record is one row of key-value pairs returned by the graph engine.
type Record map[string]any

// Options configures a graph client implementation.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("graph URI is required")

// Int reads an integer column, tolerating the int64/float64 variants the
// driver produces depending on the aggregate used.
func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// Float reads a float column.
func (r Record) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

// String reads a string column, returning "" for nulls.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Bool reads a boolean column, returning false for nulls.
func (r Record) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Strings reads a list-of-strings column.
func (r Record) Strings(key string) []string {
	if ss, ok := r[key].([]string); ok {
		return ss
	}
	raw, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
