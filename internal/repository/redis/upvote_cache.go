package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	VoteSetTTL       = 24 * time.Hour
	VoteCntTTL       = 24 * time.Hour
	LockTTL          = 300 * time.Millisecond
	VoteSetKeyPrefix = "upvote:set:benchmark"   // 某条 benchmark 已点赞用户集合
	VoteCntKeyPrefix = "upvote:cnt:benchmark"   // 某条 benchmark 的点赞计数缓存
	LockKeyPrefix    = "lock:upvote:benchmark:" // 分布式锁
)

type UpvoteCacheRepository struct {
	// 可配置
	voteSetTTL time.Duration
	voteCntTTL time.Duration
}

type DistLock struct {
	RDB *redis.Client
}

func NewUpvoteCacheRepository() *UpvoteCacheRepository {
	return &UpvoteCacheRepository{
		voteSetTTL: VoteSetTTL,
		voteCntTTL: VoteCntTTL,
	}
}

func (r *UpvoteCacheRepository) voteSetKey(benchmarkID uint64) string {
	return fmt.Sprintf("%s:%d", VoteSetKeyPrefix, benchmarkID)
}
func (r *UpvoteCacheRepository) voteCntKey(benchmarkID uint64) string {
	return fmt.Sprintf("%s:%d", VoteCntKeyPrefix, benchmarkID)
}

// AddVote 写路径：成功写MySQL后再调用
func (r *UpvoteCacheRepository) AddVote(ctx context.Context, userID string, benchmarkID uint64) error {
	k := r.voteSetKey(benchmarkID)
	if err := Client.SAdd(ctx, k, userID).Err(); err != nil {
		return err
	}
	_ = Client.Expire(ctx, k, r.voteSetTTL).Err()

	ck := r.voteCntKey(benchmarkID)
	if err := Client.Incr(ctx, ck).Err(); err != nil {
		return err
	}
	_ = Client.Expire(ctx, ck, r.voteCntTTL).Err()
	return nil
}

func (r *UpvoteCacheRepository) RemoveVote(ctx context.Context, userID string, benchmarkID uint64) error {
	k := r.voteSetKey(benchmarkID)
	if err := Client.SRem(ctx, k, userID).Err(); err != nil {
		return err
	}
	ck := r.voteCntKey(benchmarkID)
	// 计数防负数
	if err := Client.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, ck).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if val <= 0 {
			// 若不存在或<=0，直接返回，交给对账兜底
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Decr(ctx, ck)
			return nil
		})
		return err
	}, ck); err != nil {
		return err
	}
	return nil
}

// IsVotedCached 从缓存查看用户是否已经对该条 benchmark 点过赞
func (r *UpvoteCacheRepository) IsVotedCached(ctx context.Context, userID string, benchmarkID uint64) (bool, bool, error) {
	k := r.voteSetKey(benchmarkID)
	exists, err := Client.Exists(ctx, k).Result()
	if err != nil {
		return false, false, err
	}
	if exists == 0 {
		return false, false, nil
	}
	b, err := Client.SIsMember(ctx, k, userID).Result()
	return b, true, err
}

// GetCountCached 从缓存读取点赞计数
func (r *UpvoteCacheRepository) GetCountCached(ctx context.Context, benchmarkID uint64) (int64, bool, error) {
	ck := r.voteCntKey(benchmarkID)
	val, err := Client.Get(ctx, ck).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	return val, true, err
}

// SetCount 回填点赞计数
func (r *UpvoteCacheRepository) SetCount(ctx context.Context, benchmarkID uint64, cnt int64) error {
	ck := r.voteCntKey(benchmarkID)
	return Client.Set(ctx, ck, cnt, r.voteCntTTL).Err()
}

// WarmIsVoted 惰性回填：只在集合已存在时写，避免无界扩张
func (r *UpvoteCacheRepository) WarmIsVoted(ctx context.Context, userID string, benchmarkID uint64, voted bool) {
	k := r.voteSetKey(benchmarkID)
	if ok, _ := Client.Exists(ctx, k).Result(); ok > 0 {
		if voted {
			_ = Client.SAdd(ctx, k, userID).Err()
		} else {
			_ = Client.SRem(ctx, k, userID).Err()
		}
		_ = Client.Expire(ctx, k, r.voteSetTTL).Err()
	}
}

// DeleteCount 删除计数缓存，支持可选延迟二删，减少并发窗口脏数据
func (r *UpvoteCacheRepository) DeleteCount(ctx context.Context, benchmarkID uint64, delay ...time.Duration) error {
	key := r.voteCntKey(benchmarkID)
	if err := Client.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if len(delay) > 0 && delay[0] > 0 {
		d := delay[0]
		go func() {
			t := time.NewTimer(d)
			defer t.Stop()
			<-t.C
			_ = Client.Del(context.Background(), key).Err()
		}()
	}
	return nil
}

// Acquire 请求加分布式锁
func (l *DistLock) Acquire(ctx context.Context, benchmarkID uint64, token string) (bool, error) {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, benchmarkID)
	return l.RDB.SetNX(ctx, key, token, LockTTL).Result()
}

// Release 用lua保证原子性
func (l *DistLock) Release(ctx context.Context, benchmarkID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, benchmarkID)
	_, err := redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`).Run(ctx, l.RDB, []string{key}, token).Result()
	return err
}
