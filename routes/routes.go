package routes

import (
	"net/http"
	"time"

	"businessconnect/config"
	"businessconnect/handlers"
	"businessconnect/middleware"
	"businessconnect/models"
	"businessconnect/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterUserRoutes registers identity endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth middleware.Authenticator) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.User.RegisterHandler)
		api.POST("/login", hb.User.LoginHandler)
		api.POST("/logout", middleware.OptionalAuthMiddleware(auth), hb.User.LogoutHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(auth))
		protected.GET("/profile", hb.User.GetProfileHandler)
		protected.PUT("/profile", hb.User.UpdateProfileHandler)
		protected.GET("/sessions", hb.User.GetSessionsHandler)
		protected.DELETE("/sessions/:sessionId", hb.User.RevokeSessionHandler)
		protected.GET("/activities", hb.User.GetActivitiesHandler)
	}
}

// RegisterBusinessRoutes registers the directory, catalog and review endpoints.
func RegisterBusinessRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth middleware.Authenticator) {
	api := r.Group("/api/businesses")
	{
		// Public reads. A valid token only identifies the viewer for view dedup.
		public := api.Group("")
		public.Use(middleware.OptionalAuthMiddleware(auth))
		public.GET("/get-all", hb.Business.GetAllBusinessesHandler)
		public.GET("/:id", hb.Business.GetBusinessHandler)
		public.GET("/:id/reviews", hb.Review.GetReviewsHandler)
		public.POST("/:id/inquiries", hb.Business.RecordInquiryHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(auth))
		protected.POST("/upload/image", hb.Business.UploadImageHandler)
		protected.POST("/:id/reviews", hb.Review.CreateReviewHandler)
		protected.PUT("/:id", hb.Business.UpdateBusinessHandler)
		protected.DELETE("/:id", hb.Business.DeleteBusinessHandler)
		protected.POST("/:id/products", hb.Business.AddProductHandler)
		protected.PUT("/:id/products/:productId", hb.Business.UpdateProductHandler)
		protected.DELETE("/:id/products/:productId", hb.Business.DeleteProductHandler)

		owners := protected.Group("")
		owners.Use(middleware.RequireRole(models.RoleBusinessOwner))
		owners.POST("", hb.Business.CreateBusinessHandler)
		owners.GET("", hb.Business.GetMyBusinessesHandler)
		owners.GET("/stats", hb.Business.GetStatsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the periodic monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Mongo {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": http.StatusText(code), "message": "Business Connect API", "checks": status})
	})
}

// RegisterMetricsRoute exposes the Prometheus registry.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth middleware.Authenticator) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppConfig.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterMetricsRoute(r)
	RegisterUserRoutes(r, hb, auth)
	RegisterBusinessRoutes(r, hb, auth)
}
