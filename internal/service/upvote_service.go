package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"llmboard/internal/identity"
	"llmboard/internal/repository/mysql"
	"llmboard/internal/repository/redis"
)

var ErrAuthRequired = errors.New("authentication required")

type UpvoteService struct {
	repo      *mysql.UpvoteRepository
	voteCache *redis.UpvoteCacheRepository
	lock      *redis.DistLock
}

func NewUpvoteService(db *gorm.DB) *UpvoteService {
	return &UpvoteService{
		repo:      &mysql.UpvoteRepository{DB: db},
		voteCache: redis.NewUpvoteCacheRepository(),
		lock:      &redis.DistLock{RDB: redis.Client},
	}
}

// Toggle 点赞开关。台账键是用户id，匿名身份不允许投票
// 写库成功后，优先尝试加锁强更新缓存；拿不到锁则删计数Key，交给读侧惰性回填
func (s *UpvoteService) Toggle(ctx context.Context, ident identity.Identity, benchmarkID uint64) (bool, error) {
	if !ident.Authenticated {
		return false, ErrAuthRequired
	}
	if benchmarkID == 0 {
		return false, errors.New("invalid benchmark id")
	}

	voted, err := s.repo.Toggle(ctx, ident.UserID, benchmarkID)
	if err != nil {
		return false, err
	}

	// 集合可直接更新（不强制），失败忽略
	if voted {
		_ = s.voteCache.AddVote(ctx, ident.UserID, benchmarkID)
	} else {
		_ = s.voteCache.RemoveVote(ctx, ident.UserID, benchmarkID)
	}

	// 计数更新受锁保护；拿不到锁则删计数Key
	token := fmt.Sprintf("%s-%d-%d", ident.UserID, benchmarkID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, benchmarkID, token)
	if got {
		defer s.lock.Release(ctx, benchmarkID, token)
		// 回源校准一次，失败则降级删Key
		if cnt, err := s.repo.GetUpvoteCount(ctx, benchmarkID); err == nil {
			_ = s.voteCache.SetCount(ctx, benchmarkID, cnt)
		} else {
			_ = s.voteCache.DeleteCount(ctx, benchmarkID)
		}
	} else {
		_ = s.voteCache.DeleteCount(ctx, benchmarkID)
	}
	return voted, nil
}

func (s *UpvoteService) IsVoted(ctx context.Context, ident identity.Identity, benchmarkID uint64) (bool, error) {
	if !ident.Authenticated {
		return false, nil
	}
	// 先查缓存集合（命中才用）
	if b, ok, err := s.voteCache.IsVotedCached(ctx, ident.UserID, benchmarkID); err == nil && ok {
		return b, nil
	}
	// 回源 MySQL
	b, err := s.repo.IsVoted(ctx, ident.UserID, benchmarkID)
	if err == nil {
		s.voteCache.WarmIsVoted(ctx, ident.UserID, benchmarkID, b)
	}
	return b, err
}

// GetCountWithLock 读计数：缓存 -> 锁 -> 回源 -> 回填
func (s *UpvoteService) GetCountWithLock(ctx context.Context, benchmarkID uint64) (int64, error) {
	if v, ok, err := s.voteCache.GetCountCached(ctx, benchmarkID); err == nil && ok {
		return v, nil
	}
	token := fmt.Sprintf("cnt-%d-%d", benchmarkID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, benchmarkID, token)

	if got {
		defer s.lock.Release(ctx, benchmarkID, token)

		// 第二次检查
		if v, ok, err := s.voteCache.GetCountCached(ctx, benchmarkID); err == nil && ok {
			return v, nil
		}

		v, err := s.repo.GetUpvoteCount(ctx, benchmarkID)
		if err != nil {
			return 0, err
		}
		_ = s.voteCache.SetCount(ctx, benchmarkID, v)
		return v, nil
	}

	// 没拿到锁，短暂退避后再读一次缓存，避免全体打DB
	time.Sleep(50 * time.Millisecond)
	if v, ok, err := s.voteCache.GetCountCached(ctx, benchmarkID); err == nil && ok {
		return v, nil
	}
	return s.repo.GetUpvoteCount(ctx, benchmarkID)
}
