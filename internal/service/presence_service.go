package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"papertrade/internal/domain"
)

// presenceTTL is how long a heartbeat keeps a user counted as online
const presenceTTL = 2 * time.Minute

// PresenceService tracks which users are currently online via redis
// heartbeat keys with a TTL. When redis is not configured every method
// degrades to a no-op and the online count reads as zero.
type PresenceService struct {
	rdb      *redis.Client
	userRepo domain.UserRepository
}

// NewPresenceService creates a new PresenceService. rdb may be nil.
func NewPresenceService(rdb *redis.Client, userRepo domain.UserRepository) *PresenceService {
	return &PresenceService{rdb: rdb, userRepo: userRepo}
}

func presenceKey(userID uuid.UUID) string {
	return "presence:" + userID.String()
}

// Heartbeat marks a user online for the TTL window
func (s *PresenceService) Heartbeat(ctx context.Context, userID uuid.UUID) error {
	if s.rdb == nil {
		return nil
	}

	if err := s.rdb.Set(ctx, presenceKey(userID), time.Now().Unix(), presenceTTL).Err(); err != nil {
		return fmt.Errorf("failed to record heartbeat: %w", err)
	}

	return nil
}

// OnlineCount returns the number of users with a live heartbeat
func (s *PresenceService) OnlineCount(ctx context.Context) (int, error) {
	if s.rdb == nil {
		return 0, nil
	}

	var count int
	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, "presence:*", 100).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to scan presence keys: %w", err)
		}
		count += len(keys)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	return count, nil
}

// Sweep folds live heartbeats into users.last_seen_at so presence survives
// a redis flush. Called from the cron scheduler.
func (s *PresenceService) Sweep(ctx context.Context) error {
	if s.rdb == nil {
		return nil
	}

	var ids []uuid.UUID
	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, "presence:*", 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan presence keys: %w", err)
		}
		for _, key := range keys {
			id, err := uuid.Parse(key[len("presence:"):])
			if err != nil {
				log.Printf("WARNING: Malformed presence key %q, skipping", key)
				continue
			}
			ids = append(ids, id)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	if len(ids) == 0 {
		return nil
	}

	return s.userRepo.TouchSeen(ctx, ids, time.Now())
}
