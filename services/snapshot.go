package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"openinvite/models"

	"github.com/go-redis/redis/v8"
)

const (
	SNAPSHOT_CACHE_TTL  = 15 * time.Minute // TTL кеша снапшота ленты
	SNAPSHOT_KEY_PREFIX = "feed_snapshot:" // Префикс ключей снапшотов в Redis
)

func feedSnapshotKey(userID int64) string {
	return fmt.Sprintf("%s%d", SNAPSHOT_KEY_PREFIX, userID)
}

// getFeedSnapshot читает кешированный снапшот ленты. (nil, nil) - промах кеша.
func getFeedSnapshot(ctx context.Context, userID int64) (*models.FeedResponse, error) {
	if RedisClient == nil {
		return nil, fmt.Errorf("redis not available")
	}
	data, err := RedisClient.Get(ctx, feedSnapshotKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var feed models.FeedResponse
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// cacheFeedSnapshot кеширует целиком собранную ленту. Снапшот замещается
// как единое целое, частичных обновлений нет.
func cacheFeedSnapshot(ctx context.Context, userID int64, feed *models.FeedResponse) {
	if RedisClient == nil || feed == nil {
		return
	}
	data, err := json.Marshal(feed)
	if err != nil {
		return
	}
	RedisClient.Set(ctx, feedSnapshotKey(userID), data, SNAPSHOT_CACHE_TTL)
}

// InvalidateFeedSnapshot сбрасывает кеш ленты пользователя
func InvalidateFeedSnapshot(ctx context.Context, userID int64) {
	if RedisClient == nil {
		return
	}
	RedisClient.Del(ctx, feedSnapshotKey(userID))
}
