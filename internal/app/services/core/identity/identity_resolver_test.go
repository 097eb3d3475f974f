package identity

import (
	"context"
	"errors"
	"healthmate-service/internal/app/models"
	"healthmate-service/internal/pkg/exceptions"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDirectory struct {
	mu          sync.Mutex
	accounts    map[models.ProfileKind]map[string]string
	singleCalls int
	batchCalls  map[models.ProfileKind]int
	err         error
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		accounts: map[models.ProfileKind]map[string]string{
			models.ProfileKindPatient: {"P7": "U9", "P8": "U10"},
			models.ProfileKindDoctor:  {"D1": "U1"},
		},
		batchCalls: make(map[models.ProfileKind]int),
	}
}

func (f *fakeDirectory) FindAccountIDByProfileID(ctx context.Context, profileID string, kind models.ProfileKind) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.singleCalls++
	if f.err != nil {
		return "", f.err
	}
	return f.accounts[kind][profileID], nil
}

func (f *fakeDirectory) FindAccountIDsByProfileIDs(ctx context.Context, profileIDs []string, kind models.ProfileKind) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchCalls[kind]++
	if f.err != nil {
		return nil, f.err
	}
	result := make(map[string]string)
	for _, id := range profileIDs {
		if accountID, ok := f.accounts[kind][id]; ok {
			result[id] = accountID
		}
	}
	return result, nil
}

func mustAccountRef(t *testing.T, id string) models.SubjectReference {
	ref, err := models.NewAccountRef(id)
	require.NoError(t, err)
	return ref
}

func mustProfileRef(t *testing.T, id string, kind models.ProfileKind) models.SubjectReference {
	ref, err := models.NewProfileRef(id, kind)
	require.NoError(t, err)
	return ref
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("Account Reference Needs No Lookup", func(t *testing.T) {
		directory := newFakeDirectory()
		resolver := NewIdentityResolver(directory, zap.NewNop())

		accountID, err := resolver.Resolve(ctx, mustAccountRef(t, "U1"))

		assert.NoError(t, err)
		assert.Equal(t, "U1", accountID)
		assert.Equal(t, 0, directory.singleCalls, "account references must not hit the directory")
	})

	t.Run("Profile Reference Resolves To Owner", func(t *testing.T) {
		resolver := NewIdentityResolver(newFakeDirectory(), zap.NewNop())

		accountID, err := resolver.Resolve(ctx, mustProfileRef(t, "P7", models.ProfileKindPatient))

		assert.NoError(t, err)
		assert.Equal(t, "U9", accountID)
	})

	t.Run("Profile Kind Is Part Of The Lookup", func(t *testing.T) {
		resolver := NewIdentityResolver(newFakeDirectory(), zap.NewNop())

		_, err := resolver.Resolve(ctx, mustProfileRef(t, "P7", models.ProfileKindDoctor))

		assert.True(t, errors.Is(err, exceptions.ErrUnresolvable))
	})

	t.Run("Missing Profile Is Unresolvable", func(t *testing.T) {
		resolver := NewIdentityResolver(newFakeDirectory(), zap.NewNop())

		accountID, err := resolver.Resolve(ctx, mustProfileRef(t, "P404", models.ProfileKindPatient))

		assert.Empty(t, accountID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, exceptions.ErrUnresolvable))
		assert.Equal(t, 500, exceptions.StatusCodeOf(err))
	})

	t.Run("Same Reference Resolves Identically", func(t *testing.T) {
		resolver := NewIdentityResolver(newFakeDirectory(), zap.NewNop())
		ref := mustProfileRef(t, "D1", models.ProfileKindDoctor)

		first, err := resolver.Resolve(ctx, ref)
		require.NoError(t, err)
		second, err := resolver.Resolve(ctx, ref)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("Directory Failure Propagates", func(t *testing.T) {
		directory := newFakeDirectory()
		directory.err = exceptions.ErrMongoDBFindDocument(errors.New("connection reset"))
		resolver := NewIdentityResolver(directory, zap.NewNop())

		_, err := resolver.Resolve(ctx, mustProfileRef(t, "P7", models.ProfileKindPatient))

		require.Error(t, err)
		assert.False(t, errors.Is(err, exceptions.ErrUnresolvable))
	})

	t.Run("Zero Reference Is Rejected", func(t *testing.T) {
		resolver := NewIdentityResolver(newFakeDirectory(), zap.NewNop())

		_, err := resolver.Resolve(ctx, models.SubjectReference{})

		assert.Error(t, err)
	})
}

func TestResolveBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("Preserves Order And Reports Per Reference", func(t *testing.T) {
		directory := newFakeDirectory()
		resolver := NewIdentityResolver(directory, zap.NewNop())
		refs := []models.SubjectReference{
			mustProfileRef(t, "P7", models.ProfileKindPatient),
			mustAccountRef(t, "U1"),
			mustProfileRef(t, "P404", models.ProfileKindPatient),
			mustProfileRef(t, "D1", models.ProfileKindDoctor),
			mustProfileRef(t, "P7", models.ProfileKindPatient),
		}

		results, err := resolver.ResolveBatch(ctx, refs)

		require.NoError(t, err)
		require.Len(t, results, len(refs))
		for i, ref := range refs {
			assert.Equal(t, ref, results[i].Reference)
		}
		assert.Equal(t, "U9", results[0].AccountID)
		assert.Equal(t, "U1", results[1].AccountID)
		assert.True(t, errors.Is(results[2].Err, exceptions.ErrUnresolvable))
		assert.False(t, results[2].Resolved())
		assert.Equal(t, "U1", results[3].AccountID)
		assert.Equal(t, "U9", results[4].AccountID)
	})

	t.Run("One Lookup Per Profile Kind", func(t *testing.T) {
		directory := newFakeDirectory()
		resolver := NewIdentityResolver(directory, zap.NewNop())
		refs := []models.SubjectReference{
			mustProfileRef(t, "P7", models.ProfileKindPatient),
			mustProfileRef(t, "P8", models.ProfileKindPatient),
			mustProfileRef(t, "D1", models.ProfileKindDoctor),
			mustProfileRef(t, "P7", models.ProfileKindPatient),
		}

		_, err := resolver.ResolveBatch(ctx, refs)

		require.NoError(t, err)
		assert.Equal(t, 1, directory.batchCalls[models.ProfileKindPatient])
		assert.Equal(t, 1, directory.batchCalls[models.ProfileKindDoctor])
		assert.Equal(t, 0, directory.singleCalls)
	})

	t.Run("Only Account References", func(t *testing.T) {
		directory := newFakeDirectory()
		resolver := NewIdentityResolver(directory, zap.NewNop())

		results, err := resolver.ResolveBatch(ctx, []models.SubjectReference{mustAccountRef(t, "U1"), mustAccountRef(t, "U2")})

		require.NoError(t, err)
		assert.Equal(t, "U1", results[0].AccountID)
		assert.Equal(t, "U2", results[1].AccountID)
		assert.Empty(t, directory.batchCalls)
	})

	t.Run("Empty Input", func(t *testing.T) {
		resolver := NewIdentityResolver(newFakeDirectory(), zap.NewNop())

		results, err := resolver.ResolveBatch(ctx, nil)

		assert.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("Directory Failure Fails The Batch", func(t *testing.T) {
		directory := newFakeDirectory()
		directory.err = errors.New("timeout")
		resolver := NewIdentityResolver(directory, zap.NewNop())

		results, err := resolver.ResolveBatch(ctx, []models.SubjectReference{mustProfileRef(t, "P7", models.ProfileKindPatient)})

		assert.Error(t, err)
		assert.Nil(t, results)
	})
}
