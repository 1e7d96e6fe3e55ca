package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bucketly/bucketly_backend/internal/apperrors"
	portssvc "github.com/bucketly/bucketly_backend/internal/core/ports/services"
	"github.com/bucketly/bucketly_backend/internal/dto"
	"github.com/bucketly/bucketly_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// workspaceHandler handles HTTP requests related to workspaces.
type workspaceHandler struct {
	workspaceService portssvc.WorkspaceSvcFacade
}

func newWorkspaceHandler(ws portssvc.WorkspaceSvcFacade) *workspaceHandler {
	return &workspaceHandler{
		workspaceService: ws,
	}
}

// registerWorkspaceRoutes registers routes for workspaces and the bucket and
// transaction routes nested under a specific workspace.
func registerWorkspaceRoutes(rg *gin.RouterGroup, workspaceService portssvc.WorkspaceSvcFacade, bucketService portssvc.BucketSvcFacade, transactionService portssvc.TransactionSvcFacade) {
	h := newWorkspaceHandler(workspaceService)

	workspacesTopLevel := rg.Group("/workspaces")
	{
		workspacesTopLevel.POST("", h.createWorkspace)
		workspacesTopLevel.GET("", h.listUserWorkspaces)
	}

	workspaceSpecific := rg.Group("/workspaces/:workspaceID")
	{
		workspaceSpecific.GET("", h.getWorkspace)
		workspaceSpecific.PUT("", h.updateWorkspace)
		workspaceSpecific.DELETE("", h.deleteWorkspace)

		registerBucketRoutes(workspaceSpecific, bucketService)
		registerTransactionRoutes(workspaceSpecific, transactionService)
	}
}

// respondWorkspaceError maps workspace-scoped service errors to HTTP responses.
// It is shared by the bucket and transaction handlers, which run through the
// same ownership checks.
func respondWorkspaceError(c *gin.Context, err error, defaultMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not the owner of this workspace"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(defaultMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": defaultMsg})
	}
}

func (h *workspaceHandler) createWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateWorkspace", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	workspace, err := h.workspaceService.CreateWorkspace(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWorkspaceError(c, err, "Failed to create workspace")
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkspaceResponse(workspace))
}

func (h *workspaceHandler) listUserWorkspaces(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	workspaces, err := h.workspaceService.ListWorkspaces(c.Request.Context(), userID)
	if err != nil {
		respondWorkspaceError(c, err, "Failed to list workspaces")
		return
	}

	c.JSON(http.StatusOK, dto.ToListWorkspacesResponse(workspaces))
}

func (h *workspaceHandler) getWorkspace(c *gin.Context) {
	workspaceID := c.Param("workspaceID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	workspace, err := h.workspaceService.GetWorkspace(c.Request.Context(), workspaceID, userID)
	if err != nil {
		respondWorkspaceError(c, err, "Failed to retrieve workspace")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(workspace))
}

func (h *workspaceHandler) updateWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspaceID")

	var req dto.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateWorkspace", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	workspace, err := h.workspaceService.UpdateWorkspace(c.Request.Context(), workspaceID, req, userID)
	if err != nil {
		respondWorkspaceError(c, err, "Failed to update workspace")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(workspace))
}

func (h *workspaceHandler) deleteWorkspace(c *gin.Context) {
	workspaceID := c.Param("workspaceID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.workspaceService.DeleteWorkspace(c.Request.Context(), workspaceID, userID); err != nil {
		respondWorkspaceError(c, err, "Failed to delete workspace")
		return
	}

	c.Status(http.StatusNoContent)
}
