package service

import (
	"context"
	"encoding/json"
	"lexi_backend/internal/repository"
	"lexi_backend/internal/util"
	"lexi_backend/pkg/logger"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	leaderboardKey = "leaderboard:top"
	cacheTimeout   = 2 * time.Second
)

// LeaderboardService serves the top attempts, optionally through a Redis copy.
// A nil Redis client disables caching.
//
// A fill never stores rows read before an Invalidate in this process. Other
// processes sharing the Redis key can still see a stale copy for up to TTL.
type LeaderboardService struct {
	Repo  *repository.AttemptRepository
	Redis *redis.Client
	TTL   time.Duration
	sf    singleflight.Group
	gen   atomic.Uint64

	// afterRead runs between the database read and the cache write of a fill.
	afterRead func()
}

func NewLeaderboardService(repo *repository.AttemptRepository, rdb *redis.Client, ttl time.Duration) *LeaderboardService {
	return &LeaderboardService{
		Repo:  repo,
		Redis: rdb,
		TTL:   ttl,
	}
}

func (s *LeaderboardService) Top(ctx context.Context) ([]repository.LeaderboardRow, error) {
	if s.Redis == nil {
		return s.Repo.Leaderboard(util.LeaderboardLimit)
	}

	if rows, ok := s.cached(ctx); ok {
		return rows, nil
	}

	result, err, _ := s.sf.Do(leaderboardKey, func() (interface{}, error) {
		// another caller may have filled the cache while we waited
		if rows, ok := s.cached(ctx); ok {
			return rows, nil
		}

		gen := s.gen.Load()
		rows, err := s.Repo.Leaderboard(util.LeaderboardLimit)
		if err != nil {
			return nil, err
		}
		if s.afterRead != nil {
			s.afterRead()
		}
		s.store(gen, rows)
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]repository.LeaderboardRow), nil
}

// store writes rows read at generation gen, unless an invalidation happened since.
func (s *LeaderboardService) store(gen uint64, rows []repository.LeaderboardRow) {
	if s.gen.Load() != gen {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	payload, err := json.Marshal(rows)
	if err == nil {
		err = s.Redis.Set(ctx, leaderboardKey, payload, s.TTL).Err()
	}
	if err != nil {
		logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
		return
	}
	// an Invalidate may have slipped in between the check and the write
	if s.gen.Load() != gen {
		s.drop(ctx)
	}
}

func (s *LeaderboardService) drop(ctx context.Context) {
	if err := s.Redis.Del(ctx, leaderboardKey).Err(); err != nil {
		logger.Log.Warn("leaderboard cache invalidation failed", zap.Error(err))
	}
}

func (s *LeaderboardService) cached(ctx context.Context) ([]repository.LeaderboardRow, bool) {
	val, err := s.Redis.Get(ctx, leaderboardKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("leaderboard cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var rows []repository.LeaderboardRow
	if err := json.Unmarshal(val, &rows); err != nil {
		logger.Log.Warn("leaderboard cache entry is corrupt", zap.Error(err))
		return nil, false
	}
	return rows, true
}

// Invalidate drops the cached leaderboard. Safe on a nil receiver.
func (s *LeaderboardService) Invalidate(ctx context.Context) {
	if s == nil || s.Redis == nil {
		return
	}
	s.gen.Add(1)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheTimeout)
	defer cancel()
	s.drop(ctx)
}
