package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/NotariaHQ/notaria_backend/internal/apperrors"
	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	portssvc "github.com/NotariaHQ/notaria_backend/internal/core/ports/services"
	"github.com/NotariaHQ/notaria_backend/internal/dto"
	"github.com/NotariaHQ/notaria_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusHandler handles HTTP requests related to the document workflow.
type statusHandler struct {
	workflowService portssvc.WorkflowSvcFacade
}

// newStatusHandler creates a new statusHandler.
func newStatusHandler(ws portssvc.WorkflowSvcFacade) *statusHandler {
	return &statusHandler{
		workflowService: ws,
	}
}

// registerStatusRoutes registers workflow routes.
func registerStatusRoutes(rg *gin.RouterGroup, workflowService portssvc.WorkflowSvcFacade) {
	h := newStatusHandler(workflowService)

	rg.POST("/documents/:documentID/status", h.advanceStatus)
	rg.GET("/status/:documentID", h.getStatus)
	rg.GET("/by-role", h.listByRole)
	rg.GET("/documents/:documentID/history", h.getApproveHistory)
}

// advanceStatus godoc
// @Summary Advance or reject a document's workflow status
// @Description Applies an accept or reject action on behalf of the caller's role
// @Tags workflow
// @Accept json
// @Produce json
// @Param documentID path string true "Document ID"
// @Param action body dto.AdvanceStatusRequest true "Workflow action"
// @Success 200 {object} dto.AdvanceStatusResponse
// @Failure 400 {object} map[string]string "Invalid action or no next status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Role may not act on the current status"
// @Failure 404 {object} map[string]string "Document has no workflow status"
// @Failure 409 {object} map[string]string "Status changed concurrently or terminal"
// @Failure 500 {object} map[string]string "Failed to advance status"
// @Security BearerAuth
// @Router /documents/{documentID}/status [post]
func (h *statusHandler) advanceStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("documentID")

	var req dto.AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AdvanceStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	actorRole, ok := middleware.GetUserRoleFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.workflowService.Advance(c.Request.Context(), documentID, domain.WorkflowAction(req.Action), actorRole, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Document has no workflow status"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to advance status in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to advance status"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.AdvanceStatusResponse{
		Message:    "Status updated",
		DocumentID: entry.DocumentID,
		Status:     entry.Status,
	})
}

// getStatus godoc
// @Summary Get the current workflow status of a document
// @Tags workflow
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.StatusResponse
// @Failure 404 {object} map[string]string "Document has no workflow status"
// @Failure 500 {object} map[string]string "Failed to retrieve status"
// @Security BearerAuth
// @Router /status/{documentID} [get]
func (h *statusHandler) getStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("documentID")

	entry, err := h.workflowService.GetStatus(c.Request.Context(), documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document has no workflow status"})
		} else {
			logger.Error("Failed to get status from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve status"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStatusResponse(entry))
}

// listByRole godoc
// @Summary List documents in the caller's work queue
// @Description Returns the documents whose status is visible to the caller's role
// @Tags workflow
// @Produce json
// @Success 200 {array} dto.DocumentWithStatusResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Role has no work queue"
// @Failure 500 {object} map[string]string "Failed to list documents"
// @Security BearerAuth
// @Router /by-role [get]
func (h *statusHandler) listByRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorRole, ok := middleware.GetUserRoleFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	docs, err := h.workflowService.ListByRole(c.Request.Context(), actorRole)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list documents by role", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list documents"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentWithStatusResponses(docs))
}

// getApproveHistory godoc
// @Summary Get the audit trail of a document
// @Description Returns every recorded status transition, oldest first
// @Tags workflow
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {array} dto.ApproveHistoryResponse
// @Failure 500 {object} map[string]string "Failed to retrieve history"
// @Security BearerAuth
// @Router /documents/{documentID}/history [get]
func (h *statusHandler) getApproveHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("documentID")

	records, err := h.workflowService.GetApproveHistory(c.Request.Context(), documentID)
	if err != nil {
		logger.Error("Failed to get approve history from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve history"})
		return
	}

	c.JSON(http.StatusOK, dto.ToApproveHistoryResponses(records))
}
