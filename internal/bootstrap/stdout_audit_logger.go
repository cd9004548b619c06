package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StdoutAuditLogger writes lifecycle audit events to the process log.
// The component name tells the binaries apart (api, worker, consumer).
type StdoutAuditLogger struct {
	component string
}

func NewStdoutAuditLogger(component string) *StdoutAuditLogger {
	return &StdoutAuditLogger{component: component}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	zap.L().Named("audit").Info("audit event",
		zap.String("component", l.component),
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}
