package web

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mkurent/recipebook/internal/logging"
	"github.com/mkurent/recipebook/internal/server/auth"
)

// ImageStore is the slice of the storage layer the image endpoints need.
type ImageStore interface {
	Put(ctx context.Context, body io.Reader, contentType string) (string, error)
	PresignGet(ctx context.Context, key string) (string, error)
}

// UploadImageHandler serves POST /post-image. Unlike the GraphQL operations,
// uploads are rejected at the door: an unauthenticated client has no business
// filling the bucket.
func UploadImageHandler(store ImageStore, logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := auth.IdentityFromContext(c.Request.Context())
		if !identity.Verified {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "No file attached!"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			logger.Error(c.Request.Context(), "opening uploaded file", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occured"})
			return
		}
		defer file.Close()

		key, err := store.Put(c.Request.Context(), file, fileHeader.Header.Get("Content-Type"))
		if err != nil {
			logger.Error(c.Request.Context(), "storing uploaded file", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occured"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":  "File received",
			"filePath": "/images/" + key,
		})
	}
}

// DownloadImageHandler serves GET /images/*key by redirecting to a short-lived
// presigned URL on the storage backend.
func DownloadImageHandler(store ImageStore, logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimPrefix(c.Param("key"), "/")
		if key == "" {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
			return
		}

		url, err := store.PresignGet(c.Request.Context(), key)
		if err != nil {
			logger.Error(c.Request.Context(), "presigning image url", "key", key, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "An error occured"})
			return
		}

		c.Redirect(http.StatusFound, url)
	}
}
