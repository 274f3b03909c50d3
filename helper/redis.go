package helper

import (
	"context"
	"log"
	"sync"
	"time"

	"seminar_manager/config"

	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

func RedisClient() *redis.Client {
	redisOnce.Do(func() {
		redisClient = redis.NewClient(&redis.Options{
			Addr: config.ConfigOr("REDIS_ADDR", "localhost:6379"),
		})
	})
	return redisClient
}

// AcquireJobLock takes a day-scoped lock so that scheduled jobs fire once even
// when several instances run the same schedule. Redis being unreachable is not
// a reason to skip the job; the caller proceeds and a duplicate send is
// accepted as the lesser failure.
func AcquireJobLock(ctx context.Context, job string, ttl time.Duration) bool {
	key := "seminar_manager:job:" + job + ":" + time.Now().Format("2006-01-02")
	ok, err := RedisClient().SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		log.Printf("job lock unavailable for %s, proceeding: %v", job, err)
		return true
	}
	if !ok {
		log.Printf("job %s already claimed by another instance, skipping", job)
	}
	return ok
}

// PublishCapacityChange notifies websocket subscribers (possibly on other
// instances) that a seminar's registered count moved.
func PublishCapacityChange(seminarId uint) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := RedisClient().Publish(ctx, "seminar_manager:capacity", seminarId).Err(); err != nil {
		log.Printf("capacity publish failed for seminar %d: %v", seminarId, err)
	}
}
