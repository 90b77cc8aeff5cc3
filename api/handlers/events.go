package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"openinvite/api/middleware"
	"openinvite/services"

	"github.com/gin-gonic/gin"
)

var eventService = services.NewEventService()

const serviceName = "openinvite"

// CreateEvent создает новое событие
func CreateEvent(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req services.EventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	start := time.Now()
	event, err := eventService.CreateEvent(c.Request.Context(), userID, req)
	if err != nil {
		middleware.RecordEventOperation("create", "error", serviceName, time.Since(start))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	middleware.RecordEventOperation("create", "ok", serviceName, time.Since(start))

	c.JSON(http.StatusCreated, event)
}

// DeleteEvent удаляет событие (только создатель)
func DeleteEvent(c *gin.Context) {
	userID := c.GetInt64("user_id")

	eventID, err := strconv.ParseInt(c.Param("event_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	err = eventService.DeleteEvent(c.Request.Context(), userID, eventID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
	case errors.Is(err, services.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, services.ErrNotEventCreator):
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the creator can delete the event"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
	}
}

// JoinEvent добавляет текущего пользователя в участники события
func JoinEvent(c *gin.Context) {
	userID := c.GetInt64("user_id")

	eventID, err := strconv.ParseInt(c.Param("event_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	start := time.Now()
	err = eventService.JoinEvent(c.Request.Context(), userID, eventID)
	switch {
	case err == nil:
		middleware.RecordEventOperation("join", "ok", serviceName, time.Since(start))
		c.JSON(http.StatusOK, gin.H{"message": "Joined event"})
	case errors.Is(err, services.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, services.ErrEventNotVisible):
		c.JSON(http.StatusForbidden, gin.H{"error": "Event is not visible"})
	default:
		middleware.RecordEventOperation("join", "error", serviceName, time.Since(start))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join event"})
	}
}

// LeaveEvent убирает текущего пользователя из участников события
func LeaveEvent(c *gin.Context) {
	userID := c.GetInt64("user_id")

	eventID, err := strconv.ParseInt(c.Param("event_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	start := time.Now()
	err = eventService.LeaveEvent(c.Request.Context(), userID, eventID)
	switch {
	case err == nil:
		middleware.RecordEventOperation("leave", "ok", serviceName, time.Since(start))
		c.JSON(http.StatusOK, gin.H{"message": "Left event"})
	case errors.Is(err, services.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, services.ErrEventNotVisible):
		c.JSON(http.StatusForbidden, gin.H{"error": "Event is not visible"})
	default:
		middleware.RecordEventOperation("leave", "error", serviceName, time.Since(start))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave event"})
	}
}

// GetFeed возвращает ленту событий друзей, сгруппированную по неделям
func GetFeed(c *gin.Context) {
	userID := c.GetInt64("user_id")

	start := time.Now()
	feed, err := eventService.Feed(c.Request.Context(), userID)
	if err != nil {
		middleware.RecordEventOperation("feed", "error", serviceName, time.Since(start))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get feed"})
		return
	}
	middleware.RecordEventOperation("feed", "ok", serviceName, time.Since(start))

	c.JSON(http.StatusOK, feed)
}

// GetEventsOnDay возвращает события на дату (?date=YYYY-MM-DD)
func GetEventsOnDay(c *gin.Context) {
	userID := c.GetInt64("user_id")

	dateStr := c.Query("date")
	day, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
		return
	}

	events, err := eventService.EventsOnDate(c.Request.Context(), userID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": dateStr, "events": events})
}

// GetMonthGrid возвращает параметры месячной сетки календаря
func GetMonthGrid(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid year query parameter is required"})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be between 1 and 12"})
		return
	}

	c.JSON(http.StatusOK, services.MonthGridFor(year, time.Month(month)))
}
