package companionsdk

import (
	"sync"

	"go.uber.org/zap"
)

// ──────────────────────────────────────────────
// Alert Dispatcher — synchronous pub-sub fan-out
// ──────────────────────────────────────────────

// AlertHandler receives dispatched alerts. Handlers are invoked synchronously
// from whichever goroutine triggered the alert; slow work must be handed off
// to the handler's own async boundary.
type AlertHandler func(alert EmotionAlert)

// AlertDispatcher fans alerts out to registered handlers in registration
// order. A panicking handler is recovered and logged so it cannot block the
// publisher or the remaining handlers.
type AlertDispatcher struct {
	mu       sync.RWMutex
	handlers []AlertHandler
	logger   *zap.Logger
}

// NewAlertDispatcher creates an empty dispatcher.
func NewAlertDispatcher(logger *zap.Logger) *AlertDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlertDispatcher{logger: logger}
}

// Subscribe registers a handler. Handlers cannot be removed; tear down the
// owning session instead.
func (d *AlertDispatcher) Subscribe(handler AlertHandler) {
	if handler == nil {
		return
	}
	d.mu.Lock()
	d.handlers = append(d.handlers, handler)
	d.mu.Unlock()
}

// Publish delivers the alert to every handler, in registration order.
func (d *AlertDispatcher) Publish(alert EmotionAlert) {
	d.mu.RLock()
	handlers := make([]AlertHandler, len(d.handlers))
	copy(handlers, d.handlers)
	d.mu.RUnlock()

	for i, handler := range handlers {
		d.invoke(i, handler, alert)
	}
}

func (d *AlertDispatcher) invoke(index int, handler AlertHandler, alert EmotionAlert) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Warn("alert handler panicked",
				zap.Int("handler", index),
				zap.String("alert_type", string(alert.Type)),
				zap.Any("panic", r))
		}
	}()
	handler(alert)
}

// HandlerCount returns the number of registered handlers.
func (d *AlertDispatcher) HandlerCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers)
}
