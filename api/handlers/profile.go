package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"openinvite/services"

	"github.com/gin-gonic/gin"
)

var storageService = services.NewStorageService()

// GetMyProfile возвращает профиль текущего пользователя
func GetMyProfile(c *gin.Context) {
	userID := c.GetInt64("user_id")
	user, err := userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "avatar": user.Avatar()})
}

// UpdateProfile обновляет имя/никнейм текущего пользователя
func UpdateProfile(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req services.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user})
}

// UploadAvatar принимает multipart-файл, сохраняет его и прописывает URL в профиль
func UploadAvatar(c *gin.Context) {
	userID := c.GetInt64("user_id")

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}

	publicURL, err := storageService.SaveAvatar(fileHeader.Filename, data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := userService.UpdateProfile(c.Request.Context(), userID, services.ProfileUpdate{
		AvatarURL: &publicURL,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Avatar uploaded", "avatar_url": publicURL, "user": user})
}

// UserSearch ищет пользователей по никнейму
func UserSearch(c *gin.Context) {
	userID := c.GetInt64("user_id")

	query := c.Query("username")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username query parameter is required"})
		return
	}

	limit := 5
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 50 {
			limit = l
		}
	}

	users, err := userService.SearchByUsername(c.Request.Context(), userID, query, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UserGet возвращает профиль по id
func UserGet(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := userService.GetProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "avatar": user.Avatar()})
}
