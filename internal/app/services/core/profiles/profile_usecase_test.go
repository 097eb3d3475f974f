package profiles

import (
	"context"
	"errors"
	"healthmate-service/internal/app/models"
	"healthmate-service/internal/app/services/core/access"
	"healthmate-service/internal/pkg/exceptions"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type forgetRecorder struct {
	mu     sync.Mutex
	forgot []string
	err    error
}

func (f *forgetRecorder) Forget(ctx context.Context, profileID string, kind models.ProfileKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forgot = append(f.forgot, string(kind)+"/"+profileID)
	return f.err
}

// lostRaceRepository sees no profile on lookup but loses the insert, as when
// another request creates the same profile in between.
type lostRaceRepository struct {
	*ProfileMemoryRepository
	creates int
}

func (r *lostRaceRepository) FindByAccountID(ctx context.Context, accountID string, kind models.ProfileKind) (*models.Profile, error) {
	return nil, nil
}

func (r *lostRaceRepository) CreateIfAbsent(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	r.creates++
	return nil, exceptions.ErrProfileAlreadyExists(nil, string(profile.Kind), profile.AccountID)
}

func patientData(name string) *models.ProfileData {
	return &models.ProfileData{Patient: &models.PatientDetails{FullName: name, Age: 34}}
}

func doctorData(name string) *models.ProfileData {
	return &models.ProfileData{Doctor: &models.DoctorDetails{FullName: name, Specialization: "cardiology"}}
}

func newTestUsecase() (*profileUsecase, *ProfileMemoryRepository, *forgetRecorder) {
	repo := newProfileMemoryRepository()
	cache := &forgetRecorder{}
	uc := NewProfileUsecase(repo, cache, access.NewPolicyEngine(), zap.NewNop()).(*profileUsecase)
	return uc, repo, cache
}

func TestCreateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates And Links To Account", func(t *testing.T) {
		uc, repo, _ := newTestUsecase()

		profile, err := uc.CreateProfile(ctx, "U9", models.ProfileKindPatient, patientData("Ayu"))
		require.NoError(t, err)
		assert.NotEmpty(t, profile.ID)
		assert.Equal(t, "U9", profile.AccountID)
		assert.Equal(t, models.ProfileKindPatient, profile.Kind)
		assert.False(t, profile.CreatedAt.IsZero())

		accountID, err := repo.FindAccountIDByProfileID(ctx, profile.ID, models.ProfileKindPatient)
		require.NoError(t, err)
		assert.Equal(t, "U9", accountID)
	})

	t.Run("Second Create Is A Conflict", func(t *testing.T) {
		uc, _, _ := newTestUsecase()

		_, err := uc.CreateProfile(ctx, "U9", models.ProfileKindPatient, patientData("Ayu"))
		require.NoError(t, err)

		_, err = uc.CreateProfile(ctx, "U9", models.ProfileKindPatient, patientData("Ayu again"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, exceptions.ErrConflict))
		assert.Equal(t, 409, exceptions.StatusCodeOf(err))
	})

	t.Run("Same Account May Hold One Profile Of Each Kind", func(t *testing.T) {
		uc, _, _ := newTestUsecase()

		_, err := uc.CreateProfile(ctx, "U9", models.ProfileKindPatient, patientData("Ayu"))
		require.NoError(t, err)
		_, err = uc.CreateProfile(ctx, "U9", models.ProfileKindDoctor, doctorData("Dr. Ayu"))
		require.NoError(t, err)
	})

	t.Run("Details Must Match Kind", func(t *testing.T) {
		uc, _, _ := newTestUsecase()

		_, err := uc.CreateProfile(ctx, "U9", models.ProfileKindPatient, doctorData("Dr. Ayu"))
		require.Error(t, err)
		assert.Equal(t, 400, exceptions.StatusCodeOf(err))
	})

	t.Run("Rejects Malformed Account Id", func(t *testing.T) {
		uc, _, _ := newTestUsecase()

		_, err := uc.CreateProfile(ctx, "", models.ProfileKindPatient, patientData("Ayu"))
		require.Error(t, err)
		assert.Equal(t, 400, exceptions.StatusCodeOf(err))
	})

	t.Run("Concurrent Creates Produce Exactly One Profile", func(t *testing.T) {
		uc, repo, _ := newTestUsecase()

		const workers = 16
		var (
			wg        sync.WaitGroup
			successes int32
			conflicts int32
		)
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				_, err := uc.CreateProfile(ctx, "U42", models.ProfileKindDoctor, doctorData("Dr. Race"))
				if err == nil {
					atomic.AddInt32(&successes, 1)
					return
				}
				if errors.Is(err, exceptions.ErrConflict) {
					atomic.AddInt32(&conflicts, 1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), successes)
		assert.Equal(t, int32(workers-1), conflicts)
		assert.Len(t, repo.byID[models.ProfileKindDoctor], 1)
	})

	t.Run("Conflict On Insert After Empty Lookup", func(t *testing.T) {
		repo := &lostRaceRepository{ProfileMemoryRepository: newProfileMemoryRepository()}
		uc := NewProfileUsecase(repo, nil, access.NewPolicyEngine(), zap.NewNop())

		profile, err := uc.CreateProfile(ctx, "U9", models.ProfileKindPatient, patientData("Ayu"))
		require.Error(t, err)
		assert.Nil(t, profile)
		assert.True(t, errors.Is(err, exceptions.ErrConflict))
		assert.Equal(t, 409, exceptions.StatusCodeOf(err))
		assert.Equal(t, 1, repo.creates)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing Profile Is Not Found And Nothing Is Created", func(t *testing.T) {
		uc, repo, _ := newTestUsecase()

		_, err := uc.UpdateProfile(ctx, "U9", models.ProfileKindPatient, patientData("Ayu"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, exceptions.ErrNotFound))
		assert.Equal(t, 404, exceptions.StatusCodeOf(err))
		assert.Empty(t, repo.byID[models.ProfileKindPatient])
	})

	t.Run("Patches Fields And Keeps The Owner", func(t *testing.T) {
		uc, _, _ := newTestUsecase()

		created, err := uc.CreateProfile(ctx, "U9", models.ProfileKindPatient, patientData("Ayu"))
		require.NoError(t, err)

		updated, err := uc.UpdateProfile(ctx, "U9", models.ProfileKindPatient, &models.ProfileData{
			Patient: &models.PatientDetails{Phone: "+62811"},
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "U9", updated.AccountID)
		assert.Equal(t, "Ayu", updated.Patient.FullName)
		assert.Equal(t, "+62811", updated.Patient.Phone)
	})
}

func TestGetProfileByID(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newTestUsecase()

	patient, err := uc.CreateProfile(ctx, "U9", models.ProfileKindPatient, patientData("Ayu"))
	require.NoError(t, err)
	doctor, err := uc.CreateProfile(ctx, "U1", models.ProfileKindDoctor, doctorData("Dr. Budi"))
	require.NoError(t, err)

	t.Run("Owner Reads Own Profile", func(t *testing.T) {
		got, err := uc.GetProfileByID(ctx, models.Actor{AccountID: "U9", Role: models.RolePatient}, patient.ID, models.ProfileKindPatient)
		require.NoError(t, err)
		assert.Equal(t, patient.ID, got.ID)
	})

	t.Run("Doctor Reads Patient Profile", func(t *testing.T) {
		_, err := uc.GetProfileByID(ctx, models.Actor{AccountID: "U1", Role: models.RoleDoctor}, patient.ID, models.ProfileKindPatient)
		require.NoError(t, err)
	})

	t.Run("Other Patient Cannot Read Patient Profile", func(t *testing.T) {
		_, err := uc.GetProfileByID(ctx, models.Actor{AccountID: "U10", Role: models.RolePatient}, patient.ID, models.ProfileKindPatient)
		require.Error(t, err)
		assert.True(t, errors.Is(err, exceptions.ErrForbidden))
		assert.Equal(t, 403, exceptions.StatusCodeOf(err))
	})

	t.Run("Patient Reads Doctor Profile", func(t *testing.T) {
		_, err := uc.GetProfileByID(ctx, models.Actor{AccountID: "U10", Role: models.RolePatient}, doctor.ID, models.ProfileKindDoctor)
		require.NoError(t, err)
	})

	t.Run("Unknown Id Is Not Found", func(t *testing.T) {
		_, err := uc.GetProfileByID(ctx, models.Actor{AccountID: "A1", Role: models.RoleAdmin}, "nope", models.ProfileKindDoctor)
		require.Error(t, err)
		assert.Equal(t, 404, exceptions.StatusCodeOf(err))
	})
}

func TestDeleteProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes Profile And Forgets Cached Owner", func(t *testing.T) {
		uc, repo, cache := newTestUsecase()

		created, err := uc.CreateProfile(ctx, "U9", models.ProfileKindPatient, patientData("Ayu"))
		require.NoError(t, err)

		require.NoError(t, uc.DeleteProfile(ctx, "U9", models.ProfileKindPatient))
		assert.Equal(t, []string{"patient/" + created.ID, "patient/" + created.ID}, cache.forgot)

		accountID, err := repo.FindAccountIDByProfileID(ctx, created.ID, models.ProfileKindPatient)
		require.NoError(t, err)
		assert.Empty(t, accountID)

		_, err = uc.GetProfile(ctx, "U9", models.ProfileKindPatient)
		assert.Equal(t, 404, exceptions.StatusCodeOf(err))
	})

	t.Run("Missing Profile Is Not Found", func(t *testing.T) {
		uc, _, cache := newTestUsecase()

		err := uc.DeleteProfile(ctx, "U9", models.ProfileKindDoctor)
		require.Error(t, err)
		assert.Equal(t, 404, exceptions.StatusCodeOf(err))
		assert.Empty(t, cache.forgot)
	})

	t.Run("Works Without A Cache", func(t *testing.T) {
		repo := newProfileMemoryRepository()
		uc := NewProfileUsecase(repo, nil, access.NewPolicyEngine(), zap.NewNop())

		_, err := uc.CreateProfile(ctx, "U9", models.ProfileKindDoctor, doctorData("Dr. Ayu"))
		require.NoError(t, err)
		require.NoError(t, uc.DeleteProfile(ctx, "U9", models.ProfileKindDoctor))
	})

	t.Run("Failed Invalidation Keeps The Profile", func(t *testing.T) {
		uc, repo, cache := newTestUsecase()
		cache.err = errors.New("connection refused")

		created, err := uc.CreateProfile(ctx, "U9", models.ProfileKindPatient, patientData("Ayu"))
		require.NoError(t, err)

		require.Error(t, uc.DeleteProfile(ctx, "U9", models.ProfileKindPatient))
		assert.Len(t, cache.forgot, 1)

		accountID, err := repo.FindAccountIDByProfileID(ctx, created.ID, models.ProfileKindPatient)
		require.NoError(t, err)
		assert.Equal(t, "U9", accountID)
	})

	t.Run("Redis Failure Leaves No Stale Grant", func(t *testing.T) {
		repo := newProfileMemoryRepository()
		redis := newFakeRedis()
		directory := NewCachedProfileDirectory(repo, redis, time.Minute, zap.NewNop())
		uc := NewProfileUsecase(repo, directory, access.NewPolicyEngine(), zap.NewNop())

		created, err := uc.CreateProfile(ctx, "U9", models.ProfileKindPatient, patientData("Ayu"))
		require.NoError(t, err)
		accountID, err := directory.FindAccountIDByProfileID(ctx, created.ID, models.ProfileKindPatient)
		require.NoError(t, err)
		require.Equal(t, "U9", accountID)

		redis.err = errors.New("connection refused")
		require.Error(t, uc.DeleteProfile(ctx, "U9", models.ProfileKindPatient))
		redis.err = nil

		// The cached owner is still right because the profile still exists.
		stored, err := uc.GetProfile(ctx, "U9", models.ProfileKindPatient)
		require.NoError(t, err)
		accountID, err = directory.FindAccountIDByProfileID(ctx, stored.ID, models.ProfileKindPatient)
		require.NoError(t, err)
		assert.Equal(t, "U9", accountID)

		require.NoError(t, uc.DeleteProfile(ctx, "U9", models.ProfileKindPatient))
		accountID, err = directory.FindAccountIDByProfileID(ctx, created.ID, models.ProfileKindPatient)
		require.NoError(t, err)
		assert.Empty(t, accountID)
	})
}

func TestCheckAccess(t *testing.T) {
	uc, _, _ := newTestUsecase()

	assert.NoError(t, uc.CheckAccess(models.Actor{AccountID: "U1", Role: models.RoleDoctor}, "U1", models.ProfileKindDoctor, models.OperationCreate))

	err := uc.CheckAccess(models.Actor{AccountID: "U1", Role: models.RolePatient}, "U1", models.ProfileKindDoctor, models.OperationCreate)
	require.Error(t, err)
	assert.Equal(t, 403, exceptions.StatusCodeOf(err))
}
