package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"ringback/backend/access"
	"ringback/backend/config"
	"ringback/backend/consent"
	"ringback/backend/controllers"
	"ringback/backend/middlewares"
	"ringback/backend/utils"
)

// Deps are the collaborators the handlers need. In production every store
// field is the same *database.Store.
type Deps struct {
	Users      controllers.UserStore
	Businesses controllers.BusinessStore
	OptIns     controllers.OptInStore
	Directory  access.Directory
	Sink       consent.Sink
	Drafter    utils.ScriptDrafter // nil falls back to the greeting template
}

// Register wires middleware and handlers onto r. Only cfg.TrustedProxies may
// set the client IP through forwarding headers.
func Register(r *gin.Engine, cfg config.Config, d Deps) error {
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSAllowOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", middlewares.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middlewares.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/register", controllers.Register(cfg, d.Users))
		auth.POST("/login", controllers.Login(cfg, d.Users))

		api.GET("/industries", controllers.ListIndustries())
		api.POST("/sms-opt-in", middlewares.RateLimit(cfg.OptInRatePerMin), controllers.SMSOptIn(d.Sink))

		api.GET("/me", middlewares.Auth(cfg.JWTSecret), controllers.Me(d.Users, d.Directory))

		onboarding := api.Group("/onboarding")
		onboarding.Use(middlewares.OptionalAuth(cfg.JWTSecret), middlewares.RequireZone(access.ZoneOnboarding, d.Directory))
		onboarding.POST("/business", controllers.SetupBusiness(d.Businesses))
		onboarding.GET("/status", controllers.OnboardingStatus(d.Businesses))
		onboarding.POST("/script-preview", controllers.ScriptPreview(d.Drafter))

		dashboard := api.Group("/dashboard")
		dashboard.Use(middlewares.OptionalAuth(cfg.JWTSecret), middlewares.RequireZone(access.ZoneDashboard, d.Directory))
		dashboard.GET("", controllers.Dashboard(d.Businesses))

		admin := api.Group("/admin")
		admin.Use(middlewares.OptionalAuth(cfg.JWTSecret), middlewares.RequireZone(access.ZoneAdmin, d.Directory))
		admin.GET("/businesses", controllers.AdminListBusinesses(d.Businesses))
		admin.POST("/businesses/:id/complete", controllers.AdminCompleteOnboarding(d.Businesses))
		admin.GET("/sms-opt-ins/export", controllers.AdminExportOptIns(d.OptIns))
	}
	return nil
}
