package bootstrap

import "context"

// AuditLog is one operational audit record (process lifecycle, not the
// per-request decision history kept by the audit package).
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
