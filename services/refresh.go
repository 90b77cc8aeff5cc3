package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"
)

// RefreshNotifier коалесцирует сигналы "таблица изменилась" по пользователям:
// сколько бы изменений ни пришло за окно дебаунса, пользователь получает один
// push и одно перестроение снапшота ленты. Повторное применение безопасно -
// клиент в ответ целиком перечитывает агрегат, а не накатывает дельты.
type RefreshNotifier struct {
	mu      sync.Mutex
	pending map[int64]map[string]struct{}
	timer   *time.Timer
	window  time.Duration
}

func NewRefreshNotifier(window time.Duration) *RefreshNotifier {
	return &RefreshNotifier{
		pending: make(map[int64]map[string]struct{}),
		window:  window,
	}
}

// Notify отмечает, что таблица table изменилась для перечисленных пользователей.
func (n *RefreshNotifier) Notify(table string, userIDs []int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, userID := range userIDs {
		tables, ok := n.pending[userID]
		if !ok {
			tables = make(map[string]struct{})
			n.pending[userID] = tables
		}
		tables[table] = struct{}{}
	}
	if n.timer == nil {
		n.timer = time.AfterFunc(n.window, n.flush)
	}
}

// flush отправляет по одному push на пользователя за накопившуюся пачку
func (n *RefreshNotifier) flush() {
	n.mu.Lock()
	batch := n.pending
	n.pending = make(map[int64]map[string]struct{})
	n.timer = nil
	n.mu.Unlock()

	for userID, tableSet := range batch {
		tables := make([]string, 0, len(tableSet))
		for table := range tableSet {
			tables = append(tables, table)
		}

		// Снапшот ленты устарел: инвалидируем кеш и ставим перестроение в очередь
		InvalidateFeedSnapshot(context.Background(), userID)
		if QueueServiceInstance != nil && RedisClient != nil {
			QueueServiceInstance.EnqueueSnapshotRebuild(context.Background(), userID)
		}

		pushMsg := struct {
			Event  string   `json:"event"`
			Tables []string `json:"tables"`
		}{
			Event:  "table_changed",
			Tables: tables,
		}
		pushData, err := json.Marshal(pushMsg)
		if err != nil {
			log.Println("Failed to marshal refresh push:", err)
			continue
		}
		GlobalWSConnManager.Send(userID, pushData)
	}
}

var GlobalRefreshNotifier = NewRefreshNotifier(200 * time.Millisecond)
