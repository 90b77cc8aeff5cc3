package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	SNAPSHOT_REBUILD_QUEUE = "snapshot_rebuild_queue"
	QUEUE_WORKER_COUNT     = 5
)

// SnapshotRebuildTask - задача на перестроение кеша ленты пользователя
type SnapshotRebuildTask struct {
	UserID     int64     `json:"user_id"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

type QueueService struct {
	eventService *EventService
}

func NewQueueService() *QueueService {
	return &QueueService{
		eventService: NewEventService(),
	}
}

// EnqueueSnapshotRebuild ставит перестроение снапшота в очередь
func (qs *QueueService) EnqueueSnapshotRebuild(ctx context.Context, userID int64) {
	if RedisClient == nil {
		return
	}
	task := SnapshotRebuildTask{UserID: userID, EnqueuedAt: time.Now()}
	data, err := json.Marshal(task)
	if err != nil {
		log.Printf("Failed to marshal rebuild task: %v", err)
		return
	}
	if err := RedisClient.RPush(ctx, SNAPSHOT_REBUILD_QUEUE, data).Err(); err != nil {
		log.Printf("Failed to enqueue rebuild task: %v", err)
	}
}

// GetQueueStats возвращает длину очереди перестроений
func (qs *QueueService) GetQueueStats(ctx context.Context) (int64, error) {
	if RedisClient == nil {
		return 0, fmt.Errorf("redis not available")
	}
	return RedisClient.LLen(ctx, SNAPSHOT_REBUILD_QUEUE).Result()
}

// StartWorkers запускает воркеры для обработки очереди
func (qs *QueueService) StartWorkers(ctx context.Context) {
	for i := 0; i < QUEUE_WORKER_COUNT; i++ {
		go qs.worker(ctx, i)
	}
}

// worker обрабатывает задачи из очереди
func (qs *QueueService) worker(ctx context.Context, workerID int) {
	log.Printf("Snapshot rebuild worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Snapshot rebuild worker %d stopping", workerID)
			return
		default:
			result, err := RedisClient.BLPop(ctx, 5*time.Second, SNAPSHOT_REBUILD_QUEUE).Result()
			if err != nil {
				if err == redis.Nil {
					continue
				}
				log.Printf("Worker %d error getting task: %v", workerID, err)
				time.Sleep(time.Second)
				continue
			}

			if len(result) < 2 {
				continue
			}

			var task SnapshotRebuildTask
			if err := json.Unmarshal([]byte(result[1]), &task); err != nil {
				log.Printf("Worker %d error unmarshaling task: %v", workerID, err)
				continue
			}

			qs.processTask(ctx, &task, workerID)
		}
	}
}

// processTask перестраивает снапшот ленты из БД и кладет его в кеш
func (qs *QueueService) processTask(ctx context.Context, task *SnapshotRebuildTask, workerID int) {
	feed, err := qs.eventService.buildFeed(ctx, task.UserID)
	if err != nil {
		log.Printf("Worker %d failed to rebuild snapshot for user %d: %v", workerID, task.UserID, err)
		return
	}
	cacheFeedSnapshot(ctx, task.UserID, feed)
}
