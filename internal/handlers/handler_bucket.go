package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bucketly/bucketly_backend/internal/core/ports/services"
	"github.com/bucketly/bucketly_backend/internal/dto"
	"github.com/bucketly/bucketly_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bucketHandler handles HTTP requests related to buckets.
type bucketHandler struct {
	bucketService portssvc.BucketSvcFacade
}

func newBucketHandler(bs portssvc.BucketSvcFacade) *bucketHandler {
	return &bucketHandler{
		bucketService: bs,
	}
}

// registerBucketRoutes registers bucket routes nested under a workspace.
func registerBucketRoutes(rg *gin.RouterGroup, bucketService portssvc.BucketSvcFacade) {
	h := newBucketHandler(bucketService)

	buckets := rg.Group("/buckets")
	{
		buckets.POST("", h.createBucket)
		buckets.GET("", h.listBuckets)
		buckets.GET("/:bucketID", h.getBucket)
		buckets.PUT("/:bucketID", h.updateBucket)
	}
}

func (h *bucketHandler) createBucket(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspaceID")

	var req dto.CreateBucketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBucket", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bucket, err := h.bucketService.CreateBucket(c.Request.Context(), workspaceID, req, userID)
	if err != nil {
		respondWorkspaceError(c, err, "Failed to create bucket")
		return
	}

	c.JSON(http.StatusCreated, bucket)
}

func (h *bucketHandler) listBuckets(c *gin.Context) {
	workspaceID := c.Param("workspaceID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	buckets, err := h.bucketService.ListBuckets(c.Request.Context(), workspaceID, userID)
	if err != nil {
		respondWorkspaceError(c, err, "Failed to list buckets")
		return
	}

	c.JSON(http.StatusOK, gin.H{"buckets": buckets})
}

func (h *bucketHandler) getBucket(c *gin.Context) {
	workspaceID := c.Param("workspaceID")
	bucketID := c.Param("bucketID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bucket, err := h.bucketService.GetBucket(c.Request.Context(), workspaceID, bucketID, userID)
	if err != nil {
		respondWorkspaceError(c, err, "Failed to retrieve bucket")
		return
	}

	c.JSON(http.StatusOK, bucket)
}

func (h *bucketHandler) updateBucket(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspaceID")
	bucketID := c.Param("bucketID")

	var req dto.UpdateBucketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBucket", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bucket, err := h.bucketService.UpdateBucket(c.Request.Context(), workspaceID, bucketID, req, userID)
	if err != nil {
		respondWorkspaceError(c, err, "Failed to update bucket")
		return
	}

	c.JSON(http.StatusOK, bucket)
}
