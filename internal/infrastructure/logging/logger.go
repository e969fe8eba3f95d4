// Package logging adapts pkg/logger to the application's Logger port.
package logging

import (
	"context"

	"github.com/refripanel/quote-go/internal/application/port"
	"github.com/refripanel/quote-go/pkg/logger"
)

// Adapter exposes a *logger.Logger as a port.Logger.
type Adapter struct {
	*logger.Logger
}

// New wraps l.
func New(l *logger.Logger) *Adapter {
	return &Adapter{Logger: l}
}

// Nop returns an adapter that discards everything.
func Nop() *Adapter {
	return New(logger.Nop())
}

// WithContext implements port.Logger.
func (a *Adapter) WithContext(ctx context.Context) port.Logger {
	return &Adapter{Logger: a.Logger.WithContext(ctx)}
}

// Named returns a child adapter whose entries carry name.
func (a *Adapter) Named(name string) *Adapter {
	return &Adapter{Logger: a.Logger.Named(name)}
}

var _ port.Logger = (*Adapter)(nil)
