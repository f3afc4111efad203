package main

import (
	"context"
	"fmt"
	"log"

	"github.com/subtrack/subtrack_go_server/config"
	"github.com/subtrack/subtrack_go_server/internal/api"
	"github.com/subtrack/subtrack_go_server/internal/api/handler"
	"github.com/subtrack/subtrack_go_server/internal/database"
	"github.com/subtrack/subtrack_go_server/internal/pkg/pubsub"
	"github.com/subtrack/subtrack_go_server/internal/pkg/queue"
	"github.com/subtrack/subtrack_go_server/internal/pkg/ws"
	"github.com/subtrack/subtrack_go_server/internal/repository"
	"github.com/subtrack/subtrack_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 WebSocket Hub
	wsHub := ws.NewHub()

	// 订阅 worker 发布的通知事件，转发给在线用户
	subscriber := pubsub.NewSubscriber(rdb)
	go func() {
		err := subscriber.Subscribe(context.Background(), func(msg *pubsub.NotificationMessage) {
			if !wsHub.IsOnline(msg.UserID) {
				return
			}
			if err := wsHub.SendToUser(msg.UserID, &ws.Message{
				Type: msg.Type,
				Data: msg,
			}); err != nil {
				log.Printf("Failed to push to user %d: %v", msg.UserID, err)
			}
		})
		if err != nil {
			log.Printf("Pubsub subscriber stopped: %v", err)
		}
	}()
	log.Println("Notification subscriber started")

	// 初始化 Queue 和 Pub/Sub
	emailQueue := queue.NewQueue(rdb, cfg.Queue.EmailQueue)
	publisher := pubsub.NewPublisher(rdb)

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// 初始化 Service
	authService := service.NewAuthService(userRepo, settingsRepo, budgetRepo, cfg)
	userService := service.NewUserService(userRepo)
	subscriptionService := service.NewSubscriptionService(subRepo)
	notificationService := service.NewNotificationService(notifRepo)
	budgetService := service.NewBudgetService(budgetRepo, subRepo, cfg)
	settingsService := service.NewSettingsService(settingsRepo, cfg)
	reminderService := service.NewReminderService(
		subRepo, notifRepo, settingsRepo, budgetRepo, userRepo, publisher, emailQueue)

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService, reminderService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	budgetHandler := handler.NewBudgetHandler(budgetService, reminderService)
	settingsHandler := handler.NewSettingsHandler(settingsService, reminderService)
	websocketHandler := handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret)

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		userHandler,
		subscriptionHandler,
		notificationHandler,
		budgetHandler,
		settingsHandler,
		websocketHandler,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
