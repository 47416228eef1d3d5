package bootstrap

import "context"

// AuditLog is one append-only audit entry; Meta holds the structured ids the
// entry is about.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
