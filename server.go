package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"openinvite/api/middleware"
	"openinvite/api/routes"
	"openinvite/config"
	"openinvite/db"
	"openinvite/services"

	"github.com/gin-gonic/gin"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	err := config.LoadConfig(configPath)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	log.Println("Starting server...")

	if err := db.ConnectDB(); err != nil {
		panic("Failed to connect to the database: " + err.Error())
	}

	if err := db.CreateEventTypeEnum(db.ORM); err != nil {
		log.Println("Warning: failed to create event_type enum:", err)
	}
	if err := db.CreateFriendshipPairIndex(db.ORM); err != nil {
		log.Println("Warning: failed to create friendships pair index:", err)
	}
	if err := db.CreateEventIndexes(db.ORM); err != nil {
		log.Println("Warning: failed to create event indexes:", err)
	}

	ctx := context.Background()

	// Redis: кеш снапшотов ленты и очередь перестроений.
	// Без Redis сервис работает, лента строится из БД на каждый запрос.
	if err := services.InitRedis(); err != nil {
		log.Println("Warning: Redis unavailable, feed snapshots disabled:", err)
	} else {
		defer services.CloseRedis()
		services.QueueServiceInstance.StartWorkers(ctx)
	}

	// RabbitMQ: фан-аут событий изменения таблиц. Без брокера сигналы
	// доставляются напрямую через WebSocket.
	if err := services.InitRabbitMQ(); err != nil {
		log.Println("Warning: RabbitMQ unavailable, using direct push:", err)
	} else {
		defer services.CloseRabbitMQ()
		if err := services.StartChangeEventConsumer(ctx, "openinvite_updates"); err != nil {
			log.Println("Warning: failed to start change event consumer:", err)
		}
	}

	router := gin.Default()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.PrometheusMiddleware("openinvite"))

	routes.PublicApi(router)

	addr := ":8080"
	if config.AppConfig.Backend.Port != 0 {
		addr = fmt.Sprintf("%s:%d", config.AppConfig.Backend.Host, config.AppConfig.Backend.Port)
	}

	if err := router.Run(addr); err != nil {
		panic(err)
	}
}
