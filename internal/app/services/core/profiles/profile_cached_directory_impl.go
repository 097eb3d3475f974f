package profiles

import (
	"context"
	"fmt"
	"healthmate-service/internal/app/contracts"
	"healthmate-service/internal/app/models"
	"healthmate-service/internal/pkg/constvars"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// CachedProfileDirectory puts a Redis read-through cache in front of a
// ProfileDirectory. Only hits are cached; a missing profile is always
// re-checked against the store. Cache failures fall back to the store.
//
// Entries are only ever added with SETNX, so a tombstone written by Forget
// cannot be overwritten by a read that raced with the delete.
type CachedProfileDirectory struct {
	Directory       contracts.ProfileDirectory
	RedisRepository contracts.RedisRepository
	TTL             time.Duration
	Log             *zap.Logger
}

func NewCachedProfileDirectory(directory contracts.ProfileDirectory, redisRepository contracts.RedisRepository, ttl time.Duration, logger *zap.Logger) *CachedProfileDirectory {
	if ttl <= 0 {
		ttl = constvars.DefaultResolverCacheTTL
	}
	return &CachedProfileDirectory{
		Directory:       directory,
		RedisRepository: redisRepository,
		TTL:             ttl,
		Log:             logger,
	}
}

func profileAccountKey(profileID string, kind models.ProfileKind) string {
	return fmt.Sprintf(constvars.RedisKeyProfileAccountFormat, kind, profileID)
}

func (d *CachedProfileDirectory) FindAccountIDByProfileID(ctx context.Context, profileID string, kind models.ProfileKind) (string, error) {
	key := profileAccountKey(profileID, kind)

	cached, err := d.RedisRepository.Get(ctx, key)
	if err != nil {
		d.logCacheError(ctx, "CachedProfileDirectory.FindAccountIDByProfileID cache read failed", key, err)
	} else if accountID := decodeCachedAccountID(cached); accountID != "" {
		return accountID, nil
	}

	accountID, err := d.Directory.FindAccountIDByProfileID(ctx, profileID, kind)
	if err != nil || accountID == "" {
		return accountID, err
	}

	d.remember(ctx, key, accountID)
	return accountID, nil
}

func (d *CachedProfileDirectory) FindAccountIDsByProfileIDs(ctx context.Context, profileIDs []string, kind models.ProfileKind) (map[string]string, error) {
	result := make(map[string]string, len(profileIDs))
	if len(profileIDs) == 0 {
		return result, nil
	}

	keys := make([]string, len(profileIDs))
	for i, profileID := range profileIDs {
		keys[i] = profileAccountKey(profileID, kind)
	}

	misses := profileIDs
	cached, err := d.RedisRepository.MGet(ctx, keys...)
	if err != nil {
		d.logCacheError(ctx, "CachedProfileDirectory.FindAccountIDsByProfileIDs cache read failed", keys[0], err)
	} else {
		misses = make([]string, 0, len(profileIDs))
		for i, profileID := range profileIDs {
			if i < len(cached) {
				if accountID := decodeCachedAccountID(cached[i]); accountID != "" {
					result[profileID] = accountID
					continue
				}
			}
			misses = append(misses, profileID)
		}
	}

	if len(misses) == 0 {
		return result, nil
	}

	found, err := d.Directory.FindAccountIDsByProfileIDs(ctx, misses, kind)
	if err != nil {
		return nil, err
	}
	for profileID, accountID := range found {
		result[profileID] = accountID
		d.remember(ctx, profileAccountKey(profileID, kind), accountID)
	}

	return result, nil
}

// Forget replaces the cached owner of a profile with an empty tombstone that
// lives for one TTL. Reads treat the tombstone as a miss and go to the store.
func (d *CachedProfileDirectory) Forget(ctx context.Context, profileID string, kind models.ProfileKind) error {
	return d.RedisRepository.Set(ctx, profileAccountKey(profileID, kind), "", d.TTL)
}

func (d *CachedProfileDirectory) remember(ctx context.Context, key, accountID string) {
	_, err := d.RedisRepository.TrySetNX(ctx, key, accountID, d.TTL)
	if err != nil {
		d.logCacheError(ctx, "CachedProfileDirectory cache write failed", key, err)
	}
}

func (d *CachedProfileDirectory) logCacheError(ctx context.Context, message, key string, err error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	d.Log.Warn(message,
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
		zap.Error(err),
	)
}

func decodeCachedAccountID(cached string) string {
	if cached == "" {
		return ""
	}
	var accountID string
	if err := json.Unmarshal([]byte(cached), &accountID); err != nil {
		return ""
	}
	return accountID
}
