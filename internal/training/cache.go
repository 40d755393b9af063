package training

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const statusCacheKeyPrefix = "sikadvoltz-plan-status||"

// StatusCache keeps recently computed plan status snapshots in redis, so
// frequent status polls do not hit postgres. Snapshots are invalidated on
// every plan mutation and expire quickly on their own anyway.
type StatusCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewStatusCache(redisClient *redis.Client, ttl time.Duration) *StatusCache {
	return &StatusCache{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func (c *StatusCache) Get(ctx context.Context, accountID string) (*StatusSnapshot, bool) {
	cmd := c.redisClient.Get(ctx, statusCacheKeyPrefix+accountID)
	if err := cmd.Err(); err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Errorf("status cache get [%s]: %s", accountID, err)
		}
		return nil, false
	}

	var snapshot StatusSnapshot
	if err := json.Unmarshal([]byte(cmd.Val()), &snapshot); err != nil {
		log.Errorf("status cache unmarshal [%s]: %s", accountID, err)
		return nil, false
	}
	return &snapshot, true
}

func (c *StatusCache) Set(ctx context.Context, accountID string, snapshot StatusSnapshot) {
	snapshotJson, err := json.Marshal(snapshot)
	if err != nil {
		log.Errorf("status cache marshal [%s]: %s", accountID, err)
		return
	}
	if err := c.redisClient.Set(ctx, statusCacheKeyPrefix+accountID, snapshotJson, c.ttl).Err(); err != nil {
		log.Errorf("status cache set [%s]: %s", accountID, err)
	}
}

func (c *StatusCache) Invalidate(ctx context.Context, accountID string) {
	if err := c.redisClient.Del(ctx, statusCacheKeyPrefix+accountID).Err(); err != nil {
		log.Errorf("status cache invalidate [%s]: %s", accountID, err)
	}
}
