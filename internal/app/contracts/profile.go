package contracts

import (
	"context"
	"healthmate-service/internal/app/models"
)

// ProfileRepository persists profiles. Find methods return nil, nil when
// nothing matches. CreateIfAbsent fails with exceptions.ErrConflict when the
// account already has a profile of that kind.
type ProfileRepository interface {
	ProfileDirectory
	FindByAccountID(ctx context.Context, accountID string, kind models.ProfileKind) (*models.Profile, error)
	FindByID(ctx context.Context, profileID string, kind models.ProfileKind) (*models.Profile, error)
	CreateIfAbsent(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	UpdateByAccountID(ctx context.Context, accountID string, kind models.ProfileKind, patch *models.ProfileData) (*models.Profile, error)
	DeleteByID(ctx context.Context, profileID string, kind models.ProfileKind) error
	EnsureIndexes(ctx context.Context) error
}

type ProfileUsecase interface {
	CreateProfile(ctx context.Context, accountID string, kind models.ProfileKind, data *models.ProfileData) (*models.Profile, error)
	UpdateProfile(ctx context.Context, accountID string, kind models.ProfileKind, patch *models.ProfileData) (*models.Profile, error)
	GetProfile(ctx context.Context, accountID string, kind models.ProfileKind) (*models.Profile, error)
	GetProfileByID(ctx context.Context, actor models.Actor, profileID string, kind models.ProfileKind) (*models.Profile, error)
	DeleteProfile(ctx context.Context, accountID string, kind models.ProfileKind) error
	CheckAccess(actor models.Actor, ownerAccountID string, kind models.ProfileKind, operation models.Operation) error
}
