package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/keygate/auth-service/internal/events"
	"github.com/keygate/auth-service/internal/observability"
)

// StartAuditWorker subscribes audit logging and auth counters to the
// dispatcher.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) {
	if dispatcher == nil {
		return
	}

	dispatcher.Subscribe(events.EventUserRegistered, func(_ context.Context, e events.Event) error {
		fields := []zap.Field{zap.String("event_id", e.ID), zap.String("user_id", e.UserID)}
		if p, ok := e.Payload.(events.UserRegisteredPayload); ok {
			fields = append(fields, zap.String("email", p.Email))
		}
		logger.Info("user registered", fields...)
		metrics.RecordAuthEvent(observability.AuthEventRegistered)
		return nil
	})

	dispatcher.Subscribe(events.EventUserLoggedIn, func(_ context.Context, e events.Event) error {
		fields := []zap.Field{zap.String("event_id", e.ID), zap.String("user_id", e.UserID)}
		if p, ok := e.Payload.(events.UserLoggedInPayload); ok {
			fields = append(fields, zap.Time("token_expires_at", p.TokenExpiresAt))
		}
		logger.Info("user logged in", fields...)
		metrics.RecordAuthEvent(observability.AuthEventLoggedIn)
		return nil
	})
}
