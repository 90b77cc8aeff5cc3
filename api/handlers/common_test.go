package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"openinvite/db"
	"openinvite/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	// Инициализируем тестовую базу данных SQLite в памяти
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Одно соединение, иначе пул раздаст тестам разные in-memory базы
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = database.AutoMigrate(
		&models.User{}, &models.UserTokens{},
		&models.Friendship{}, &models.Event{}, &models.Attendee{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.ORM = database
}

func setupRouter(t *testing.T) *gin.Engine {
	setupTestDB(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()

	// Авторизация в тестах через заголовок X-User-ID
	r.Use(func(c *gin.Context) {
		if header := c.GetHeader("X-User-ID"); header != "" {
			if id, err := strconv.ParseInt(header, 10, 64); err == nil {
				c.Set("user_id", id)
			}
		}
		c.Next()
	})

	r.POST("/api/v1/auth/register", Register)
	r.POST("/api/v1/auth/login", Login)
	r.POST("/api/v1/friends/add", AddFriend)
	r.POST("/api/v1/friends/accept", AcceptFriend)
	r.POST("/api/v1/friends/delete", DeleteFriend)
	r.GET("/api/v1/friends/list", GetFriends)
	r.GET("/api/v1/friends/requests", GetPendingRequests)
	r.POST("/api/v1/events/create", CreateEvent)
	r.POST("/api/v1/events/:event_id/join", JoinEvent)
	r.POST("/api/v1/events/:event_id/leave", LeaveEvent)
	r.DELETE("/api/v1/events/:event_id", DeleteEvent)
	r.GET("/api/v1/events/feed", GetFeed)
	r.GET("/api/v1/events/day", GetEventsOnDay)
	r.GET("/api/v1/calendar/grid", GetMonthGrid)
	r.GET("/api/v1/system/stats", SystemStats)
	return r
}

// createTestUser создает пользователя напрямую в БД и возвращает его id
func createTestUser(t *testing.T) int64 {
	user := models.User{
		Username: gofakeit.Username(),
		FullName: gofakeit.Name(),
		Email:    gofakeit.Email(),
		Password: "x",
	}
	if err := db.ORM.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user.ID
}

func doJSON(r *gin.Engine, method, path string, userID int64, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-User-ID", fmt.Sprintf("%d", userID))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// befriend создает подтвержденную дружбу между пользователями
func befriend(t *testing.T, a, b int64) {
	f := models.Friendship{
		UserID:     a,
		FriendID:   b,
		Status:     models.FriendshipAccepted,
		CreatedAt:  time.Now(),
		AcceptedAt: time.Now(),
	}
	if err := db.ORM.Create(&f).Error; err != nil {
		t.Fatalf("failed to create friendship: %v", err)
	}
}

// createTestEvent создает событие напрямую в БД
func createTestEvent(t *testing.T, creatorID int64, at time.Time) int64 {
	event := models.Event{
		CreatorID: creatorID,
		Title:     gofakeit.Sentence(3),
		Location:  gofakeit.City(),
		Time:      at,
		Type:      models.TypeFood,
	}
	if err := db.ORM.Create(&event).Error; err != nil {
		t.Fatalf("failed to create test event: %v", err)
	}
	return event.ID
}
