package handlers

import (
	"errors"
	"net/http"

	"openinvite/services"

	"github.com/gin-gonic/gin"
)

var friendService = services.NewFriendService()

// AddFriend - обработчик отправки заявки в друзья
func AddFriend(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req struct {
		FriendID int64 `json:"friend_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := friendService.AddFriend(c.Request.Context(), userID, req.FriendID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "friend request sent"})
	case errors.Is(err, services.ErrAlreadyRequested):
		// Повторная заявка - отличимый исход, а не общая ошибка
		c.JSON(http.StatusConflict, gin.H{"error": "already requested"})
	case errors.Is(err, services.ErrAlreadyFriends):
		c.JSON(http.StatusConflict, gin.H{"error": "already friends"})
	case errors.Is(err, services.ErrSelfFriend), errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// AcceptFriend - обработчик подтверждения дружбы получателем заявки
func AcceptFriend(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req struct {
		FriendID int64 `json:"friend_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := friendService.AcceptFriend(c.Request.Context(), userID, req.FriendID)
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "friend request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "friendship accepted"})
}

// DeleteFriend - обработчик удаления дружбы/заявки
func DeleteFriend(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req struct {
		FriendID int64 `json:"friend_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := friendService.DeleteFriend(c.Request.Context(), userID, req.FriendID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "friend deleted"})
}

// GetFriends - обработчик списка подтвержденных друзей
func GetFriends(c *gin.Context) {
	userID := c.GetInt64("user_id")

	friends, err := friendService.GetFriends(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// GetPendingRequests - обработчик входящих заявок в друзья
func GetPendingRequests(c *gin.Context) {
	userID := c.GetInt64("user_id")

	requests, err := friendService.GetPendingRequests(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}
