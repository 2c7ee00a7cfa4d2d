package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Metrics())

	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "The API is running") })
	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	guard := AuthJWT(h.JWTSecret)

	r.POST("/api/users", RateLimit(h.Limiter), h.Register)

	r.POST("/api/auth", RateLimit(h.Limiter), h.Login)
	r.GET("/api/auth", guard, h.Me)

	profile := r.Group("/api/profile")
	{
		profile.GET("", h.ListProfiles)
		profile.GET("/me", guard, h.MyProfile)
		profile.GET("/user/:id", h.ProfileByUser)
		profile.POST("", guard, h.UpsertProfile)
		profile.DELETE("", guard, h.DeleteAccount)
		profile.PUT("/experience", guard, h.AddExperience)
		profile.DELETE("/experience/:id", guard, h.DeleteExperience)
		profile.PUT("/education", guard, h.AddEducation)
		profile.DELETE("/education/:id", guard, h.DeleteEducation)
	}

	return r
}
