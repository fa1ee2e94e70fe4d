// Package routers 组装 HTTP 路由
package routers

import (
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/quickpost/post-sync-service/internal/app"
	"github.com/quickpost/post-sync-service/internal/middleware"
	"github.com/quickpost/post-sync-service/internal/routers/api_router"
	"github.com/quickpost/post-sync-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"go.uber.org/zap"
)

// 认证入口限流：验证码签发和登录共用一组令牌桶
var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/session/send-code",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
	limiter.BucketRule{
		Key:          "/api/session/login",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

// NewRouter 创建 API 路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		sessionHandler := api_router.NewSessionHandler(appContainer)
		postHandler := api_router.NewPostHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)

		// 无需认证的入口
		api.GET("/version", versionHandler.ServerVersion)
		api.POST("/session/send-code", sessionHandler.SendCode)
		api.POST("/session/login", sessionHandler.Login)

		// 需要认证的入口
		auth := api.Group("", middleware.UserAuthTokenWithConfig(cfg.Security.AuthTokenKey))
		{
			auth.GET("/session", sessionHandler.Info)
			auth.POST("/session/logout", sessionHandler.Logout)

			auth.GET("/posts", postHandler.List)
			auth.POST("/posts", postHandler.Create)
			auth.DELETE("/posts", postHandler.DeleteAll)
			auth.POST("/posts/upsert-many", postHandler.UpsertMany)
			auth.GET("/posts/:id", postHandler.Get)
			auth.PUT("/posts/:id", postHandler.Update)
			auth.DELETE("/posts/:id", postHandler.Delete)
		}
	}

	r.NoRoute(middleware.NoFound())

	return r
}

// NewPrivateRouterWithLogger 创建私有调试路由（pprof）
func NewPrivateRouterWithLogger(runMode string, lg *zap.Logger) *gin.Engine {
	if runMode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RecoveryWithLogger(lg))

	debug := r.Group("/debug/pprof")
	{
		debug.GET("/", gin.WrapF(pprof.Index))
		debug.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		debug.GET("/profile", gin.WrapF(pprof.Profile))
		debug.GET("/symbol", gin.WrapF(pprof.Symbol))
		debug.GET("/trace", gin.WrapF(pprof.Trace))
		debug.GET("/heap", gin.WrapH(pprof.Handler("heap")))
		debug.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		debug.GET("/block", gin.WrapH(pprof.Handler("block")))
	}

	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "not found")
	})

	return r
}
