package contracts

import (
	"context"
	"healthmate-service/internal/app/models"
)

// IntegrityReporter surfaces dangling references. Reporting never fails the caller.
type IntegrityReporter interface {
	Report(ctx context.Context, event *models.IntegrityEvent)
}
