package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	LikeCntTTL       = 24 * time.Hour
	LockTTL          = 300 * time.Millisecond
	LikeCntKeyPrefix = "like:cnt"  // like:cnt:<subject>:<id>
	LockKeyPrefix    = "lock:like" // lock:like:<subject>:<id>
)

// LikeCacheRepository caches like counts per post or comment.
type LikeCacheRepository struct {
	rdb        *redis.Client
	likeCntTTL time.Duration
}

func NewLikeCacheRepository(rdb *redis.Client) *LikeCacheRepository {
	return &LikeCacheRepository{
		rdb:        rdb,
		likeCntTTL: LikeCntTTL,
	}
}

func likeCntKey(subject, id string) string {
	return fmt.Sprintf("%s:%s:%s", LikeCntKeyPrefix, subject, id)
}

func lockKey(subject, id string) string {
	return fmt.Sprintf("%s:%s:%s", LockKeyPrefix, subject, id)
}

// GetLikeCount reads a cached count. ok is false on a miss.
func (r *LikeCacheRepository) GetLikeCount(ctx context.Context, subject, id string) (int64, bool, error) {
	val, err := r.rdb.Get(ctx, likeCntKey(subject, id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

// SetLikeCount stores a count read from the store.
func (r *LikeCacheRepository) SetLikeCount(ctx context.Context, subject, id string, cnt int64) error {
	return r.rdb.Set(ctx, likeCntKey(subject, id), cnt, r.likeCntTTL).Err()
}

// DeleteCount drops the cached count so the next read rebuilds it. An optional
// delay schedules a second delete to cover a concurrent rebuild.
func (r *LikeCacheRepository) DeleteCount(ctx context.Context, subject, id string, delay ...time.Duration) error {
	key := likeCntKey(subject, id)
	if err := r.rdb.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if len(delay) > 0 && delay[0] > 0 {
		d := delay[0]
		go func() {
			t := time.NewTimer(d)
			defer t.Stop()
			<-t.C
			_ = r.rdb.Del(context.Background(), key).Err()
		}()
	}
	return nil
}

// Acquire takes the rebuild lock for a subject.
func (r *LikeCacheRepository) Acquire(ctx context.Context, subject, id, token string) (bool, error) {
	return r.rdb.SetNX(ctx, lockKey(subject, id), token, LockTTL).Result()
}

var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`)

// Release drops the lock only if token still owns it.
func (r *LikeCacheRepository) Release(ctx context.Context, subject, id, token string) error {
	return releaseScript.Run(ctx, r.rdb, []string{lockKey(subject, id)}, token).Err()
}
