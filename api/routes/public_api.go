package routes

import (
	"openinvite/api/handlers"
	"openinvite/api/middleware"
	"openinvite/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func PublicApi(router *gin.Engine) *gin.RouterGroup {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Загруженные аватары раздаются статикой
	if config.AppConfig != nil && config.AppConfig.Storage.AvatarDir != "" {
		router.Static("/avatars", config.AppConfig.Storage.AvatarDir)
	}

	publicEndpoints := router.Group("/api/v1/")
	{
		publicEndpoints.POST("auth/register", handlers.Register)
		publicEndpoints.POST("auth/login", handlers.Login)
	}

	authEndpoints := router.Group("/api/v1/")
	authEndpoints.Use(middleware.AuthMiddleware())
	{
		authEndpoints.POST("auth/logout", handlers.Logout)

		// Профиль
		authEndpoints.GET("profile/me", handlers.GetMyProfile)
		authEndpoints.POST("profile/update", handlers.UpdateProfile)
		authEndpoints.POST("profile/avatar", handlers.UploadAvatar)
		authEndpoints.GET("user/search", handlers.UserSearch)
		authEndpoints.GET("user/get/:id", handlers.UserGet)

		// Друзья
		authEndpoints.POST("friends/add", handlers.AddFriend)
		authEndpoints.POST("friends/accept", handlers.AcceptFriend)
		authEndpoints.POST("friends/delete", handlers.DeleteFriend)
		authEndpoints.GET("friends/list", handlers.GetFriends)
		authEndpoints.GET("friends/requests", handlers.GetPendingRequests)

		// События
		authEndpoints.POST("events/create", handlers.CreateEvent)
		authEndpoints.POST("events/:event_id/join", handlers.JoinEvent)
		authEndpoints.POST("events/:event_id/leave", handlers.LeaveEvent)
		authEndpoints.DELETE("events/:event_id", handlers.DeleteEvent)
		authEndpoints.GET("events/feed", handlers.GetFeed)
		authEndpoints.GET("events/day", handlers.GetEventsOnDay)
		authEndpoints.GET("calendar/grid", handlers.GetMonthGrid)

		// Push-сигналы об изменениях
		authEndpoints.GET("ws/updates", handlers.WSUpdatesHandler)

		// Служебная статистика
		authEndpoints.GET("system/stats", handlers.SystemStats)
	}
	return authEndpoints
}
