package router

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"fanfare-backend/internal/domain"
	"fanfare-backend/internal/transport/http/middleware"
	resp "fanfare-backend/internal/transport/http/response"
)

// NewAdmin 后台，全部接口要求 admin 角色
func NewAdmin(d Deps) *gin.Engine {
	if d.Cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(ginzap.Ginzap(d.Log, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(d.Log, true))
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimit(rate.Limit(100), 200))
	r.Use(middleware.MaxBodyBytes(16 << 20))
	r.Use(middleware.Timeout(15 * time.Second))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/admin/v1", middleware.AuthJWT(d.JWTer, domain.RoleAdmin))
	{
		v1.GET("/registrations/pending", d.Users.Pending)
		v1.POST("/users/:id/approve", d.Users.Approve)
		v1.POST("/users/:id/reject", d.Users.Reject)
		v1.POST("/users/:id/archive", d.Users.Archive)
		v1.GET("/users", d.Users.List)
		v1.GET("/users/:id", d.Users.Detail)
		v1.POST("/users/:id/badges", d.Badges.Award)

		v1.GET("/venues", d.Events.ListVenues)
		v1.POST("/venues", d.Events.CreateVenue)
		v1.PUT("/venues/:id", d.Events.UpdateVenue)
		v1.DELETE("/venues/:id", d.Events.DeleteVenue)

		v1.GET("/events", d.Events.List)
		v1.POST("/events", d.Events.Create)
		v1.PUT("/events/:id", d.Events.Update)
		v1.POST("/events/:id/publish", d.Events.Publish)
		v1.DELETE("/events/:id", d.Events.Delete)

		v1.GET("/badges/definitions", d.Badges.ListDefinitions)
		v1.POST("/badges/definitions", d.Badges.CreateDefinition)

		v1.GET("/newsletter/subscribers", d.Newsletter.Subscribers)
		v1.POST("/newsletter/issues", d.Newsletter.SendIssue)

		v1.GET("/activities", d.Activities.List)
		v1.POST("/activities/:id/archive", d.Activities.Archive)
		v1.DELETE("/activities/:id/archive", d.Activities.Unarchive)

		v1.POST("/uploads", d.Uploads.Upload)
		v1.GET("/uploads", d.Uploads.List)
	}

	r.NoRoute(func(c *gin.Context) { resp.FailWith(c, http.StatusNotFound, "not found") })
	return r
}
