package profiles

import (
	"context"
	"healthmate-service/internal/app/contracts"
	"healthmate-service/internal/app/models"
	"healthmate-service/internal/pkg/exceptions"
	"sync"

	"github.com/google/uuid"
)

// ProfileMemoryRepository is a process-local profile store used for local
// runs and tests. All mutations happen under one lock, which gives
// CreateIfAbsent the same guarantee the unique index gives in MongoDB.
type ProfileMemoryRepository struct {
	mu        sync.RWMutex
	byID      map[models.ProfileKind]map[string]*models.Profile
	byAccount map[models.ProfileKind]map[string]string
}

func NewProfileMemoryRepository() contracts.ProfileRepository {
	return newProfileMemoryRepository()
}

func newProfileMemoryRepository() *ProfileMemoryRepository {
	return &ProfileMemoryRepository{
		byID: map[models.ProfileKind]map[string]*models.Profile{
			models.ProfileKindPatient: {},
			models.ProfileKindDoctor:  {},
		},
		byAccount: map[models.ProfileKind]map[string]string{
			models.ProfileKindPatient: {},
			models.ProfileKindDoctor:  {},
		},
	}
}

func (repo *ProfileMemoryRepository) EnsureIndexes(ctx context.Context) error {
	return nil
}

func (repo *ProfileMemoryRepository) FindAccountIDByProfileID(ctx context.Context, profileID string, kind models.ProfileKind) (string, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	profile, ok := repo.byID[kind][profileID]
	if !ok {
		return "", nil
	}
	return profile.AccountID, nil
}

func (repo *ProfileMemoryRepository) FindAccountIDsByProfileIDs(ctx context.Context, profileIDs []string, kind models.ProfileKind) (map[string]string, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	result := make(map[string]string, len(profileIDs))
	for _, profileID := range profileIDs {
		if profile, ok := repo.byID[kind][profileID]; ok {
			result[profileID] = profile.AccountID
		}
	}
	return result, nil
}

func (repo *ProfileMemoryRepository) FindByAccountID(ctx context.Context, accountID string, kind models.ProfileKind) (*models.Profile, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	profileID, ok := repo.byAccount[kind][accountID]
	if !ok {
		return nil, nil
	}
	return repo.byID[kind][profileID].Clone(), nil
}

func (repo *ProfileMemoryRepository) FindByID(ctx context.Context, profileID string, kind models.ProfileKind) (*models.Profile, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	profile, ok := repo.byID[kind][profileID]
	if !ok {
		return nil, nil
	}
	return profile.Clone(), nil
}

func (repo *ProfileMemoryRepository) CreateIfAbsent(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.byID[profile.Kind]; !ok {
		return nil, exceptions.ErrInvalidProfileKind(nil, string(profile.Kind))
	}

	if _, exists := repo.byAccount[profile.Kind][profile.AccountID]; exists {
		return nil, exceptions.ErrProfileAlreadyExists(nil, string(profile.Kind), profile.AccountID)
	}

	stored := profile.Clone()
	stored.ID = uuid.NewString()
	repo.byID[stored.Kind][stored.ID] = stored
	repo.byAccount[stored.Kind][stored.AccountID] = stored.ID

	return stored.Clone(), nil
}

func (repo *ProfileMemoryRepository) UpdateByAccountID(ctx context.Context, accountID string, kind models.ProfileKind, patch *models.ProfileData) (*models.Profile, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	profileID, ok := repo.byAccount[kind][accountID]
	if !ok {
		return nil, nil
	}

	profile := repo.byID[kind][profileID]
	profile.ApplyPatch(patch)
	return profile.Clone(), nil
}

func (repo *ProfileMemoryRepository) DeleteByID(ctx context.Context, profileID string, kind models.ProfileKind) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	profile, ok := repo.byID[kind][profileID]
	if !ok {
		return nil
	}
	delete(repo.byAccount[kind], profile.AccountID)
	delete(repo.byID[kind], profileID)
	return nil
}
