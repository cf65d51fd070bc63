package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkurent/recipebook/internal/logging"
)

// NewRouter assembles the gin engine with all routes and middleware. The auth
// gate runs on every request; CORS headers are set permissively since the
// frontend is served from a different origin.
func NewRouter(executor Executor, store ImageStore, secretKey []byte, logger logging.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(AuthGate(secretKey))

	router.POST("/graphql", GraphQLHandler(executor))
	router.POST("/post-image", UploadImageHandler(store, logger))
	router.GET("/images/*key", DownloadImageHandler(store, logger))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
