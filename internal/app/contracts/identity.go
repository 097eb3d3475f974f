package contracts

import (
	"context"
	"healthmate-service/internal/app/models"
)

// ProfileDirectory answers which account a profile belongs to. A missing
// profile is reported as an empty account id with a nil error.
type ProfileDirectory interface {
	FindAccountIDByProfileID(ctx context.Context, profileID string, kind models.ProfileKind) (string, error)
	FindAccountIDsByProfileIDs(ctx context.Context, profileIDs []string, kind models.ProfileKind) (map[string]string, error)
}

// ProfileDirectoryCache is implemented by directories that keep resolved
// mappings and must drop them when a profile goes away.
type ProfileDirectoryCache interface {
	Forget(ctx context.Context, profileID string, kind models.ProfileKind) error
}

type IdentityResolver interface {
	Resolve(ctx context.Context, ref models.SubjectReference) (string, error)
	ResolveBatch(ctx context.Context, refs []models.SubjectReference) ([]models.ResolutionResult, error)
}
