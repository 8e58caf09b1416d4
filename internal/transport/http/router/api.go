package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"

	"fanfare-backend/internal/core/logger"
	"fanfare-backend/internal/transport/http/middleware"
	resp "fanfare-backend/internal/transport/http/response"
)

// NewAPI 对外站点 + 成员区
func NewAPI(d Deps) *gin.Engine {
	if d.Cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = logger.ToWriter(d.Log, zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(d.Log, zapcore.ErrorLevel)
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.AccessLog(d.Log))
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimit(rate.Limit(200), 400))
	r.Use(middleware.ConcurrencyLimit(300))
	r.Use(middleware.MaxBodyBytes(4 << 20))
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(middleware.Locale())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.Static("/uploads", d.Cfg.Uploads.Dir)

	v1 := r.Group("/api/v1")
	{
		// 公开
		v1.GET("/content/home", d.Content.Home)
		v1.GET("/content/team", d.Content.Team)
		v1.GET("/content/club", d.Content.Club)
		v1.GET("/events", d.Content.Events)
		v1.GET("/instruments", d.Reg.Instruments)
		v1.POST("/registrations", middleware.RateLimitPerIP(rate.Limit(1), 5), d.Reg.Submit)
		v1.POST("/newsletter/subscribe", d.Content.Subscribe)
		v1.POST("/newsletter/unsubscribe", d.Content.Unsubscribe)

		v1.POST("/auth/login", d.Auth.Login)
		v1.POST("/auth/logout", d.Auth.Logout)

		// 成员区
		me := v1.Group("", middleware.AuthJWT(d.JWTer, ""))
		{
			me.GET("/me", d.Auth.Me)
			me.GET("/me/profile", d.Profile.Get)
			me.PUT("/me/profile", d.Profile.Update)
		}
	}

	r.NoRoute(func(c *gin.Context) { resp.FailWith(c, http.StatusNotFound, "not found") })
	return r
}
