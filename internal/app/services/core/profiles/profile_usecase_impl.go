package profiles

import (
	"context"
	"errors"
	"healthmate-service/internal/app/contracts"
	"healthmate-service/internal/app/models"
	"healthmate-service/internal/pkg/constvars"
	"healthmate-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type profileUsecase struct {
	ProfileRepository contracts.ProfileRepository
	DirectoryCache    contracts.ProfileDirectoryCache
	PolicyEngine      contracts.AccessPolicyEngine
	Log               *zap.Logger
}

// NewProfileUsecase builds the profile link maintainer. directoryCache may be
// nil when resolution is not cached.
func NewProfileUsecase(
	profileRepository contracts.ProfileRepository,
	directoryCache contracts.ProfileDirectoryCache,
	policyEngine contracts.AccessPolicyEngine,
	logger *zap.Logger,
) contracts.ProfileUsecase {
	return &profileUsecase{
		ProfileRepository: profileRepository,
		DirectoryCache:    directoryCache,
		PolicyEngine:      policyEngine,
		Log:               logger,
	}
}

// CreateProfile links a new profile to accountID. It never returns an
// existing profile: a second create, concurrent or not, gets ProfileAlreadyExists.
func (uc *profileUsecase) CreateProfile(ctx context.Context, accountID string, kind models.ProfileKind, data *models.ProfileData) (*models.Profile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if err := validateOwner(accountID, kind); err != nil {
		return nil, err
	}
	if !data.MatchesKind(kind) {
		return nil, exceptions.ErrProfileDetailsMismatch(nil, string(kind))
	}

	existing, err := uc.ProfileRepository.FindByAccountID(ctx, accountID, kind)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		uc.Log.Info("profileUsecase.CreateProfile profile already exists",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAccountIDKey, accountID),
			zap.String(constvars.LoggingProfileKindKey, string(kind)),
		)
		return nil, exceptions.ErrProfileAlreadyExists(nil, string(kind), accountID)
	}

	profile := &models.Profile{
		AccountID:   accountID,
		Kind:        kind,
		ProfileData: *data,
	}
	profile.SetCreatedAtUpdatedAt()

	created, err := uc.ProfileRepository.CreateIfAbsent(ctx, profile)
	if err != nil {
		if errors.Is(err, exceptions.ErrConflict) {
			uc.Log.Info("profileUsecase.CreateProfile lost concurrent create",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAccountIDKey, accountID),
				zap.String(constvars.LoggingProfileKindKey, string(kind)),
			)
			return nil, err
		}
		uc.Log.Error("profileUsecase.CreateProfile error creating profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("profileUsecase.CreateProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAccountIDKey, accountID),
		zap.String(constvars.LoggingProfileKindKey, string(kind)),
		zap.String(constvars.LoggingProfileIDKey, created.ID),
	)
	return created, nil
}

// UpdateProfile patches domain fields only. The owning account is never
// rewritten and nothing is created when the profile is missing.
func (uc *profileUsecase) UpdateProfile(ctx context.Context, accountID string, kind models.ProfileKind, patch *models.ProfileData) (*models.Profile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if err := validateOwner(accountID, kind); err != nil {
		return nil, err
	}
	if !patch.MatchesKind(kind) {
		return nil, exceptions.ErrProfileDetailsMismatch(nil, string(kind))
	}

	updated, err := uc.ProfileRepository.UpdateByAccountID(ctx, accountID, kind, patch)
	if err != nil {
		uc.Log.Error("profileUsecase.UpdateProfile error updating profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if updated == nil {
		return nil, exceptions.ErrProfileNotFound(nil, string(kind), accountID)
	}

	uc.Log.Info("profileUsecase.UpdateProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAccountIDKey, accountID),
		zap.String(constvars.LoggingProfileKindKey, string(kind)),
	)
	return updated, nil
}

func (uc *profileUsecase) GetProfile(ctx context.Context, accountID string, kind models.ProfileKind) (*models.Profile, error) {
	if err := validateOwner(accountID, kind); err != nil {
		return nil, err
	}

	profile, err := uc.ProfileRepository.FindByAccountID(ctx, accountID, kind)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, exceptions.ErrProfileNotFound(nil, string(kind), accountID)
	}
	return profile, nil
}

func (uc *profileUsecase) GetProfileByID(ctx context.Context, actor models.Actor, profileID string, kind models.ProfileKind) (*models.Profile, error) {
	if err := models.ValidateIdentifier(profileID); err != nil {
		return nil, err
	}
	if !kind.IsValid() {
		return nil, exceptions.ErrInvalidProfileKind(nil, string(kind))
	}

	profile, err := uc.ProfileRepository.FindByID(ctx, profileID, kind)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, exceptions.ErrProfileNotFound(nil, string(kind), profileID)
	}

	if err := uc.CheckAccess(actor, profile.AccountID, kind, models.OperationRead); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteProfile removes the profile and its cached resolution. References
// still pointing at it become integrity faults from then on. The cache is
// cleared before the store so a failed invalidation leaves the profile in
// place instead of a stale grant behind it.
func (uc *profileUsecase) DeleteProfile(ctx context.Context, accountID string, kind models.ProfileKind) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	profile, err := uc.GetProfile(ctx, accountID, kind)
	if err != nil {
		return err
	}

	if uc.DirectoryCache != nil {
		err = uc.DirectoryCache.Forget(ctx, profile.ID, kind)
		if err != nil {
			uc.Log.Error("profileUsecase.DeleteProfile error forgetting cached resolution",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingProfileIDKey, profile.ID),
				zap.Error(err),
			)
			return err
		}
	}

	err = uc.ProfileRepository.DeleteByID(ctx, profile.ID, kind)
	if err != nil {
		uc.Log.Error("profileUsecase.DeleteProfile error deleting profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	// Refresh the tombstone so it outlives reads that started before the delete.
	if uc.DirectoryCache != nil {
		err = uc.DirectoryCache.Forget(ctx, profile.ID, kind)
		if err != nil {
			uc.Log.Warn("profileUsecase.DeleteProfile error refreshing cached resolution tombstone",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingProfileIDKey, profile.ID),
				zap.Error(err),
			)
		}
	}

	uc.Log.Info("profileUsecase.DeleteProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAccountIDKey, accountID),
		zap.String(constvars.LoggingProfileIDKey, profile.ID),
	)
	return nil
}

// CheckAccess returns ErrNotParty when actor may not perform operation on a
// profile owned by ownerAccountID.
func (uc *profileUsecase) CheckAccess(actor models.Actor, ownerAccountID string, kind models.ProfileKind, operation models.Operation) error {
	decision := uc.PolicyEngine.EvaluateProfile(actor, ownerAccountID, kind, operation)
	if !decision.Allow {
		return exceptions.ErrNotParty(nil, actor.AccountID, string(operation), string(kind)+" profile")
	}
	return nil
}

func validateOwner(accountID string, kind models.ProfileKind) error {
	if err := models.ValidateIdentifier(accountID); err != nil {
		return err
	}
	if !kind.IsValid() {
		return exceptions.ErrInvalidProfileKind(nil, string(kind))
	}
	return nil
}
