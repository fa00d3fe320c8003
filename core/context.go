package core

import "context"

// Context keys for run options
type contextKey string

const suppressOutputKey contextKey = "suppressOutput"

// WithSuppressOutput marks the context so that progress lines and console tables
// are not printed. MCP mode uses it since stdout carries the protocol.
func WithSuppressOutput(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressOutputKey, true)
}

// shouldSuppressOutput returns whether output should be suppressed from context
func shouldSuppressOutput(ctx context.Context) bool {
	val := ctx.Value(suppressOutputKey)
	if val == nil {
		return false // default: print progress
	}
	suppress, ok := val.(bool)
	return ok && suppress
}
