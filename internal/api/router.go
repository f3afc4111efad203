package api

import (
	"github.com/gin-gonic/gin"

	"github.com/subtrack/subtrack_go_server/config"
	"github.com/subtrack/subtrack_go_server/internal/api/handler"
	"github.com/subtrack/subtrack_go_server/internal/api/middleware"
)

type Router struct {
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	subscriptionHandler *handler.SubscriptionHandler
	notificationHandler *handler.NotificationHandler
	budgetHandler       *handler.BudgetHandler
	settingsHandler     *handler.SettingsHandler
	websocketHandler    *handler.WebSocketHandler
	cfg                 *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	notificationHandler *handler.NotificationHandler,
	budgetHandler *handler.BudgetHandler,
	settingsHandler *handler.SettingsHandler,
	websocketHandler *handler.WebSocketHandler,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:         authHandler,
		userHandler:         userHandler,
		subscriptionHandler: subscriptionHandler,
		notificationHandler: notificationHandler,
		budgetHandler:       budgetHandler,
		settingsHandler:     settingsHandler,
		websocketHandler:    websocketHandler,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket
		api.GET("/ws", r.websocketHandler.Handle)

		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
		}

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			// 用户
			user := authenticated.Group("/user")
			{
				user.GET("/profile", r.userHandler.GetProfile)
				user.PUT("/profile", r.userHandler.UpdateProfile)
				user.PUT("/password", r.userHandler.ChangePassword)
			}

			// 订阅
			subscriptions := authenticated.Group("/subscriptions")
			{
				subscriptions.POST("", r.subscriptionHandler.Create)
				subscriptions.GET("", r.subscriptionHandler.List)
				subscriptions.GET("/stats", r.subscriptionHandler.Stats)
				subscriptions.GET("/upcoming", r.subscriptionHandler.Upcoming)
				subscriptions.GET("/:id", r.subscriptionHandler.Get)
				subscriptions.PUT("/:id", r.subscriptionHandler.Update)
				subscriptions.DELETE("/:id", r.subscriptionHandler.Delete)
			}

			// 通知
			notifications := authenticated.Group("/notifications")
			{
				notifications.GET("", r.notificationHandler.List)
				notifications.GET("/unread-count", r.notificationHandler.UnreadCount)
				notifications.PUT("/read-all", r.notificationHandler.MarkAllRead)
				notifications.PUT("/:id/read", r.notificationHandler.MarkRead)
				notifications.DELETE("/:id", r.notificationHandler.Delete)
				notifications.DELETE("", r.notificationHandler.Clear)
			}

			// 预算
			budget := authenticated.Group("/budget")
			{
				budget.GET("", r.budgetHandler.Get)
				budget.PUT("", r.budgetHandler.Update)
				budget.GET("/summary", r.budgetHandler.Summary)
				budget.GET("/alerts", r.budgetHandler.Alerts)
				budget.GET("/categories", r.budgetHandler.CategoryStatus)
				budget.PUT("/categories", r.budgetHandler.SetCategory)
				budget.DELETE("/categories/:category", r.budgetHandler.DeleteCategory)
			}

			// 提醒设置
			settings := authenticated.Group("/settings")
			{
				settings.GET("/reminders", r.settingsHandler.Get)
				settings.PUT("/reminders", r.settingsHandler.Update)
				settings.POST("/reminders/check", r.settingsHandler.Check)
			}
		}
	}

	return engine
}
