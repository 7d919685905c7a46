package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/TWO22-Org/rezipe/domain/dto"
	httpHandler "github.com/TWO22-Org/rezipe/interfaces/http"
)

func InitiateRouter(
	searchHandler httpHandler.ISearchHandler,
	healthHandler httpHandler.IHealthHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	// Unsupported methods on known routes answer 405, not 404
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(ctx *gin.Context) {
		ctx.JSON(http.StatusMethodNotAllowed, dto.ErrorResponse{
			Error:     "method not allowed",
			Code:      "METHOD_NOT_ALLOWED",
			Retryable: false,
		})
	})

	router.GET("/healthz", healthHandler.Health)

	api := router.Group("api")
	api.GET("/search", searchHandler.Search)

	return router
}
