package handlers

import (
	"net/http"

	"openinvite/services"

	"github.com/gin-gonic/gin"
)

// SystemStats возвращает служебную статистику: длину очереди перестроений
// снапшотов и пользователей с активными WebSocket-соединениями.
func SystemStats(c *gin.Context) {
	stats := gin.H{
		"ws_connected_users": services.GlobalWSConnManager.Connected(),
		"queue_workers":      services.QUEUE_WORKER_COUNT,
	}

	if services.QueueServiceInstance != nil {
		if queueLength, err := services.QueueServiceInstance.GetQueueStats(c.Request.Context()); err == nil {
			stats["queue_length"] = queueLength
		} else {
			stats["queue_error"] = err.Error()
		}
	} else {
		stats["queue_error"] = "queue service not available"
	}

	c.JSON(http.StatusOK, stats)
}
