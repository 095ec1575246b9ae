// Package translate holds the pass-through translator used when machine
// translation is disabled.
package translate

import "context"

// Noop returns every text unchanged.
type Noop struct{}

// NewNoop creates a pass-through translator.
func NewNoop() *Noop { return &Noop{} }

// Translate returns q as is.
func (Noop) Translate(_ context.Context, q, _, _ string) (string, error) {
	return q, nil
}
