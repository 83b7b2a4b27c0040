package companionsdk

import (
	"context"

	"go.uber.org/zap"
)

// ──────────────────────────────────────────────
// Session — owned wiring for one child/session
// ──────────────────────────────────────────────

// Session owns one coordinator and one monitor. Create one per child/session
// and inject it into whatever owns the request lifecycle; there are no
// package-level singletons, so concurrent sessions in one process stay
// independent.
type Session struct {
	Coordinator *RoleCoordinator
	Monitor     *EmotionMonitor
}

// SessionOption customizes session wiring.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	catalog  *RoleCatalog
	answerFn AnswerFn
}

// WithCatalog replaces the default role catalog.
func WithCatalog(catalog *RoleCatalog) SessionOption {
	return func(o *sessionOptions) { o.catalog = catalog }
}

// WithAnswerFn wires the external answer generator.
func WithAnswerFn(fn AnswerFn) SessionOption {
	return func(o *sessionOptions) { o.answerFn = fn }
}

// NewSession wires a monitor and a coordinator over the default catalog.
// The coordinator reads the monitor's state snapshot for prompt enrichment;
// the two otherwise keep separate lock domains.
func NewSession(cfg Config, logger *zap.Logger, opts ...SessionOption) *Session {
	options := sessionOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.catalog == nil {
		options.catalog = DefaultRoleCatalog()
	}

	monitor := NewEmotionMonitor(cfg, logger)
	coordinator := NewRoleCoordinator(options.catalog, logger, CoordinatorConfig{
		HistoryCapacity:     cfg.CoordinationHistory,
		ActivationThreshold: cfg.ActivationThreshold,
		AnswerFn:            options.answerFn,
		StateFn:             monitor.CurrentState,
	})

	return &Session{Coordinator: coordinator, Monitor: monitor}
}

// Start launches the session's background analysis.
func (s *Session) Start(ctx context.Context) {
	s.Monitor.Start(ctx)
}

// Close stops the session's background work.
func (s *Session) Close() {
	s.Monitor.Stop()
}
