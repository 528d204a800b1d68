package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inspyre/internal/pkg/config"
	"inspyre/internal/pkg/middleware"
	"inspyre/internal/pkg/push"
	"inspyre/internal/pkg/registry"
	"inspyre/internal/pkg/uploader"
	"inspyre/internal/pkg/worker"
	"inspyre/pkg/cache"
	"inspyre/pkg/database"
	"inspyre/pkg/logger"
	"inspyre/pkg/response"

	_ "inspyre/docs"
	_ "inspyre/internal/domain/comment"
	_ "inspyre/internal/domain/follower"
	_ "inspyre/internal/domain/like"
	_ "inspyre/internal/domain/message"
	_ "inspyre/internal/domain/post"
	_ "inspyre/internal/domain/profile"
	_ "inspyre/internal/domain/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Inspyre API
// @version 1.0
// @description 社交网络后端：主页、帖子、评论树、点赞、关注、私信
// @BasePath /
func main() {
	config.LoadConfig()
	logger.Init(config.GlobalConfig.App.Debug)
	defer logger.Sync()

	db := database.InitDatabase()
	redisClient := database.InitRedis()
	cacheService := cache.NewRedisCache(redisClient)

	if err := uploader.InitUploader(); err != nil {
		logger.Log.Warn("OSS uploader unavailable, image upload disabled", zap.Error(err))
	}

	// 推送服务可选，初始化失败时通知静默降级
	var notifier *worker.Pool
	if pushService, err := push.NewAliyunPushService(); err != nil {
		logger.Log.Warn("push service unavailable, notifications disabled", zap.Error(err))
	} else {
		notifier = worker.NewPool(pushService, 4, 1024)
		notifier.Start()
	}

	gin.SetMode(config.GlobalConfig.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.TraceMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	router.GET("/", func(c *gin.Context) {
		response.OK(c, gin.H{"message": "Welcome to my Inspyre API!"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	moduleCtx := &registry.ModuleContext{
		DB:       db,
		Redis:    redisClient,
		Cache:    cacheService,
		Router:   router,
		Notifier: notifier,
	}
	if err := registry.InitModules(moduleCtx); err != nil {
		logger.Log.Fatal("failed to init modules", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    ":" + config.GlobalConfig.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("forced shutdown", zap.Error(err))
	}

	// 请求已停止进入，排空通知队列后再退出
	if notifier != nil {
		notifier.Stop()
	}
	logger.Log.Info("server stopped")
}
