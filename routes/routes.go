package routes

import (
	"net/http"
	"time"

	"vetcare/handlers"
	"vetcare/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterSessionRoutes registers doctor session scheduling endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/sessions")
	{
		api.GET("", hb.ListSessionsHandler)
		api.POST("", hb.CreateSessionHandler)
		api.GET("/:id", hb.GetSessionHandler)
		api.PUT("/:id", hb.UpdateSessionHandler)
		api.DELETE("/:id", hb.DeleteSessionHandler)
	}
}

// RegisterDoctorRoutes registers the read-only doctor roster.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/doctors", hb.ListDoctorsHandler)
}

// RegisterHealthRoute registers a health-check endpoint backed by the last monitor snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		state := "ok"
		if !status.Healthy() {
			state = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{"status": state, "services": status})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSessionRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterHealthRoute(r)
}
