package identity

import (
	"context"
	"healthmate-service/internal/app/contracts"
	"healthmate-service/internal/app/models"
	"healthmate-service/internal/pkg/constvars"
	"healthmate-service/internal/pkg/exceptions"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type identityResolver struct {
	Directory contracts.ProfileDirectory
	Log       *zap.Logger
}

func NewIdentityResolver(directory contracts.ProfileDirectory, logger *zap.Logger) contracts.IdentityResolver {
	return &identityResolver{
		Directory: directory,
		Log:       logger,
	}
}

// Resolve maps a reference to the account id it denotes. Account references
// are returned as-is without touching the directory.
func (r *identityResolver) Resolve(ctx context.Context, ref models.SubjectReference) (string, error) {
	if ref.IsZero() {
		return "", exceptions.ErrInvalidReferenceKind(nil, "")
	}
	if ref.IsAccount() {
		return ref.ID(), nil
	}

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	accountID, err := r.Directory.FindAccountIDByProfileID(ctx, ref.ID(), ref.ProfileKind())
	if err != nil {
		r.Log.Error("identityResolver.Resolve error looking up profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Stringer(constvars.LoggingReferenceKey, ref),
			zap.Error(err),
		)
		return "", err
	}

	if accountID == "" {
		r.Log.Warn("identityResolver.Resolve reference does not resolve",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Stringer(constvars.LoggingReferenceKey, ref),
		)
		return "", exceptions.ErrUnresolvableReference(nil, ref.String())
	}

	return accountID, nil
}

// ResolveBatch resolves refs with at most one directory call per profile kind.
// Results keep the input order; a failed reference only fails its own entry.
// The returned error is reserved for directory failures.
func (r *identityResolver) ResolveBatch(ctx context.Context, refs []models.SubjectReference) ([]models.ResolutionResult, error) {
	results := make([]models.ResolutionResult, len(refs))
	pending := make(map[models.ProfileKind][]string)
	seen := make(map[models.SubjectReference]struct{})

	for i, ref := range refs {
		results[i].Reference = ref
		switch {
		case ref.IsZero():
			results[i].Err = exceptions.ErrInvalidReferenceKind(nil, "")
		case ref.IsAccount():
			results[i].AccountID = ref.ID()
		default:
			if _, ok := seen[ref]; ok {
				continue
			}
			seen[ref] = struct{}{}
			pending[ref.ProfileKind()] = append(pending[ref.ProfileKind()], ref.ID())
		}
	}

	if len(pending) == 0 {
		return results, nil
	}

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	resolved := make(map[models.ProfileKind]map[string]string, len(pending))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for kind, profileIDs := range pending {
		kind, profileIDs := kind, profileIDs
		g.Go(func() error {
			accounts, err := r.Directory.FindAccountIDsByProfileIDs(gctx, profileIDs, kind)
			if err != nil {
				return err
			}
			mu.Lock()
			resolved[kind] = accounts
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		r.Log.Error("identityResolver.ResolveBatch error looking up profiles",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingCountKey, len(refs)),
			zap.Error(err),
		)
		return nil, err
	}

	for i, ref := range refs {
		if !ref.IsProfile() {
			continue
		}
		accountID := resolved[ref.ProfileKind()][ref.ID()]
		if accountID == "" {
			results[i].Err = exceptions.ErrUnresolvableReference(nil, ref.String())
			continue
		}
		results[i].AccountID = accountID
	}

	r.Log.Debug("identityResolver.ResolveBatch succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(refs)),
	)
	return results, nil
}
