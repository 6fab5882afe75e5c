package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
)

type warningContextKey struct{}

// WarningCollector accumulates warnings during a service call chain.
type WarningCollector struct {
	mu       sync.Mutex
	warnings []models.Warning
}

// NewWarningContext returns a context carrying a fresh WarningCollector,
// plus a reference to the collector so the handler can retrieve warnings later.
func NewWarningContext(ctx context.Context) (context.Context, *WarningCollector) {
	wc := &WarningCollector{}
	return context.WithValue(ctx, warningContextKey{}, wc), wc
}

// ensureWarnings returns ctx's collector, creating one when absent. Lets
// a handler start collecting before the service call without the service
// caring either way.
func ensureWarnings(ctx context.Context) (context.Context, *WarningCollector) {
	if wc, ok := ctx.Value(warningContextKey{}).(*WarningCollector); ok && wc != nil {
		return ctx, wc
	}
	return NewWarningContext(ctx)
}

// AddWarning appends a warning to the collector in ctx.
// If ctx has no collector, the call is a no-op.
func AddWarning(ctx context.Context, w models.Warning) {
	wc, ok := ctx.Value(warningContextKey{}).(*WarningCollector)
	if !ok || wc == nil {
		return
	}
	wc.mu.Lock()
	defer wc.mu.Unlock()
	wc.warnings = append(wc.warnings, w)
}

// Warnf formats a message and records it under the given code.
func Warnf(ctx context.Context, code models.WarningCode, format string, args ...any) {
	AddWarning(ctx, models.Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

// GetWarnings returns all collected warnings.
func (wc *WarningCollector) GetWarnings() []models.Warning {
	wc.mu.Lock()
	defer wc.mu.Unlock()
	return wc.warnings
}
