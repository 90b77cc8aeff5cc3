package services

import (
	"context"
	"time"
)

// notifyTableChanged публикует событие изменения таблицы в RabbitMQ.
// Если брокер недоступен, сигнал доставляется напрямую в нотификатор -
// подключенные клиенты все равно должны узнать о необходимости re-fetch.
func notifyTableChanged(ctx context.Context, table, action string, userIDs []int64) {
	event := ChangeEvent{
		Table:     table,
		Action:    action,
		UserIDs:   userIDs,
		CreatedAt: time.Now(),
	}
	if err := PublishChangeEvent(ctx, event); err != nil {
		GlobalRefreshNotifier.Notify(table, userIDs)
	}
}
