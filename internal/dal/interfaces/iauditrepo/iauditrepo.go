package iauditrepo

import (
	"context"

	"github.com/clearmart/oms/order/internal/service/models/auditlog"
)

// IAuditRepository records actions for the audit trail. Recording is best
// effort: callers log failures but never fail the business operation.
type IAuditRepository interface {
	Record(ctx context.Context, rec auditlog.Record) error
}
