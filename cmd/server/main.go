// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lumen-studio-go/internal/config"
	"lumen-studio-go/internal/handler"
	"lumen-studio-go/internal/middleware"
	"lumen-studio-go/internal/pipeline"
	"lumen-studio-go/internal/repository"
	"lumen-studio-go/internal/service"
	"lumen-studio-go/pkg/database"
	"lumen-studio-go/pkg/es"
	"lumen-studio-go/pkg/imagegen"
	"lumen-studio-go/pkg/kafka"
	"lumen-studio-go/pkg/llm"
	"lumen-studio-go/pkg/log"
	"lumen-studio-go/pkg/storage"
	"lumen-studio-go/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库和外部依赖
	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	storage.InitMinIO(cfg.MinIO)
	if err := es.InitES(cfg.Elasticsearch); err != nil {
		log.Errorf("es 初始化失败 %s", err)
		return
	}
	kafka.InitProducer(cfg.Kafka)

	// 4. 初始化 Repository
	userRepo := repository.NewUserRepository(database.DB)
	conversationRepo := repository.NewConversationRepository(database.RDB)
	workRepo := repository.NewWorkRepository(database.DB)
	postRepo := repository.NewPostRepository(database.DB)
	orderRepo := repository.NewOrderRepository(database.DB)
	subscriptionRepo := repository.NewSubscriptionRepository(database.DB)
	teamRepo := repository.NewTeamRepository(database.DB)
	newsletterRepo := repository.NewNewsletterRepository(database.DB)
	notificationRepo := repository.NewNotificationRepository(database.DB)
	scenePlanRepo := repository.NewScenePlanRepository(database.DB)
	creationRepo := repository.NewCreationRepository(database.DB)
	paymentRepo := repository.NewPaymentRepository(database.DB)

	// 5. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	llmClient := llm.NewClient(cfg.LLM)
	imageClient := imagegen.NewClient(cfg.ImageGen)
	userService := service.NewUserService(userRepo, jwtManager)
	adminService := service.NewAdminService(userRepo)
	creatorService := service.NewCreatorService(llmClient, imageClient, conversationRepo)
	workService := service.NewWorkService(workRepo)
	postService := service.NewPostService(postRepo)
	orderService := service.NewOrderService(orderRepo, notificationRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo)
	teamService := service.NewTeamService(teamRepo)
	newsletterService := service.NewNewsletterService(newsletterRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	scenePlanService := service.NewScenePlanService(scenePlanRepo, llmClient)
	creationService := service.NewCreationService(creationRepo)
	searchService := service.NewSearchService(es.ESClient)
	mediaService := service.NewMediaService()
	settingsService := service.NewSettingsService(paymentRepo)

	// 6. 启动后台 Kafka 消费者（内容索引）
	indexer := pipeline.NewIndexer(workRepo, postRepo)
	go kafka.StartConsumer(cfg.Kafka, indexer)

	// 7. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 8. 注册路由
	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(userService)
	creatorHandler := handler.NewCreatorHandler(creatorService, userService, jwtManager)
	workHandler := handler.NewWorkHandler(workService)
	postHandler := handler.NewPostHandler(postService)
	orderHandler := handler.NewOrderHandler(orderService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	teamHandler := handler.NewTeamHandler(teamService)
	newsletterHandler := handler.NewNewsletterHandler(newsletterService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	scenePlanHandler := handler.NewScenePlanHandler(scenePlanService)
	creationHandler := handler.NewCreationHandler(creationService)
	searchHandler := handler.NewSearchHandler(searchService)
	mediaHandler := handler.NewMediaHandler(mediaService)
	adminHandler := handler.NewAdminHandler(adminService, settingsService)

	apiV1 := r.Group("/api/v1")
	{
		// Auth 路由组
		auth := apiV1.Group("/auth")
		{
			auth.POST("/refreshToken", authHandler.RefreshToken)
		}

		users := apiV1.Group("/users")
		{
			// 无需认证的路由 (公开访问)
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)

			// 需要认证的路由 (仅限登录用户访问)
			authed := users.Group("/")
			authed.Use(middleware.AuthMiddleware(jwtManager, userService))
			{
				authed.GET("/me", userHandler.GetProfile)
				authed.PUT("/me", userHandler.UpdateProfile)
				authed.POST("/logout", authHandler.Logout)
			}
		}

		// 公开站点路由组（无需认证）
		site := apiV1.Group("/site")
		{
			site.GET("/works", workHandler.ListPublished)
			site.GET("/highlights", workHandler.ListHighlights)
			site.GET("/works/:slug", workHandler.GetBySlug)
			site.GET("/posts", postHandler.ListPublished)
			site.GET("/posts/:slug", postHandler.GetBySlug)
			site.GET("/team", teamHandler.List)
			site.GET("/search", searchHandler.Search)
			site.POST("/newsletter/subscribe", newsletterHandler.Subscribe)
			site.POST("/newsletter/unsubscribe", newsletterHandler.Unsubscribe)
		}

		// Creator 路由 (WebSocket + 对话管理)
		creatorGroup := apiV1.Group("/creator")
		{
			creatorGroup.GET("/websocket-token", creatorHandler.GetWebsocketStopToken)

			authed := creatorGroup.Group("/")
			authed.Use(middleware.AuthMiddleware(jwtManager, userService))
			{
				authed.GET("/history", creatorHandler.GetHistory)
				authed.POST("/reset", creatorHandler.ResetConversation)
			}
		}
		r.GET("/creator/:token", creatorHandler.Handle)

		// 会员区路由组，需要认证
		member := apiV1.Group("/member")
		member.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			member.POST("/orders", orderHandler.Create)
			member.GET("/orders", orderHandler.ListMine)
			member.GET("/orders/:id", orderHandler.GetMine)

			member.POST("/subscriptions", subscriptionHandler.Subscribe)
			member.GET("/subscriptions/current", subscriptionHandler.GetCurrent)
			member.GET("/subscriptions", subscriptionHandler.ListMine)
			member.POST("/subscriptions/:id/cancel", subscriptionHandler.Cancel)

			member.GET("/notifications", notificationHandler.List)
			member.POST("/notifications/:id/read", notificationHandler.MarkRead)
			member.POST("/notifications/read-all", notificationHandler.MarkAllRead)

			member.POST("/scene-plans", scenePlanHandler.Create)
			member.GET("/scene-plans", scenePlanHandler.List)
			member.GET("/scene-plans/:id", scenePlanHandler.Get)
			member.PUT("/scene-plans/:id", scenePlanHandler.Update)
			member.DELETE("/scene-plans/:id", scenePlanHandler.Delete)
			member.POST("/scene-plans/:id/generate", scenePlanHandler.GenerateScenes)

			member.POST("/creations", creationHandler.Save)
			member.GET("/creations", creationHandler.List)
			member.DELETE("/creations/:id", creationHandler.Delete)

			member.POST("/media/upload", mediaHandler.Upload)
			member.GET("/media/url", mediaHandler.GetURL)
		}

		admin := apiV1.Group("/admin")
		// 管理员路由组，需要同时通过认证和管理员授权两个中间件
		admin.Use(middleware.AuthMiddleware(jwtManager, userService), middleware.AdminAuthMiddleware())
		{
			admin.GET("/users/list", adminHandler.ListUsers)
			admin.PUT("/users/:id/role", adminHandler.SetUserRole)

			admin.GET("/works", workHandler.ListAll)
			admin.POST("/works", workHandler.Create)
			admin.PUT("/works/:id", workHandler.Update)
			admin.DELETE("/works/:id", workHandler.Delete)
			admin.PUT("/works/:id/publish", workHandler.SetPublished)

			admin.GET("/posts", postHandler.ListAll)
			admin.POST("/posts", postHandler.Create)
			admin.PUT("/posts/:id", postHandler.Update)
			admin.DELETE("/posts/:id", postHandler.Delete)
			admin.PUT("/posts/:id/publish", postHandler.SetPublished)

			admin.GET("/orders", orderHandler.ListAll)
			admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)

			admin.GET("/subscriptions", subscriptionHandler.ListAll)
			admin.PUT("/subscriptions/:id/status", subscriptionHandler.SetStatus)

			admin.POST("/team", teamHandler.Create)
			admin.PUT("/team/:id", teamHandler.Update)
			admin.DELETE("/team/:id", teamHandler.Delete)

			admin.GET("/newsletter/subscribers", newsletterHandler.ListSubscribers)
			admin.POST("/newsletter/campaigns", newsletterHandler.SendCampaign)
			admin.GET("/newsletter/campaigns", newsletterHandler.ListCampaigns)

			admin.GET("/settings/payment", adminHandler.GetPaymentSetting)
			admin.PUT("/settings/payment", adminHandler.UpdatePaymentSetting)
		}
	}

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	log.Info("服务已优雅关闭")
}
