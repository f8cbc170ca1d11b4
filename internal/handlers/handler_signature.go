package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/NotariaHQ/notaria_backend/internal/apperrors"
	portssvc "github.com/NotariaHQ/notaria_backend/internal/core/ports/services"
	"github.com/NotariaHQ/notaria_backend/internal/dto"
	"github.com/NotariaHQ/notaria_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// signatureHandler handles HTTP requests for the two-party sign-off.
type signatureHandler struct {
	signatureService portssvc.SignatureSvcFacade
}

// newSignatureHandler creates a new signatureHandler.
func newSignatureHandler(ss portssvc.SignatureSvcFacade) *signatureHandler {
	return &signatureHandler{
		signatureService: ss,
	}
}

// registerSignatureRoutes registers sign-off routes.
func registerSignatureRoutes(rg *gin.RouterGroup, signatureService portssvc.SignatureSvcFacade) {
	h := newSignatureHandler(signatureService)

	signature := rg.Group("/documents/:documentID/signature")
	{
		signature.POST("/user", h.approveByRequester)
		signature.POST("/secretary", h.approveByStaff)
		signature.GET("", h.getSignatureRequest)
	}
}

// approveByRequester godoc
// @Summary Record the requester's signature approval
// @Description Creates the signature request on first call; repeat calls only replace the image
// @Tags signature
// @Accept json
// @Produce json
// @Param documentID path string true "Document ID"
// @Param approval body dto.ApproveByRequesterRequest true "Signature payload"
// @Success 200 {object} dto.SignatureResponse
// @Failure 400 {object} map[string]string "Missing signature image"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Document has no workflow status"
// @Failure 409 {object} map[string]string "Document is not in digitalSignature status"
// @Failure 500 {object} map[string]string "Failed to record approval"
// @Security BearerAuth
// @Router /documents/{documentID}/signature/user [post]
func (h *signatureHandler) approveByRequester(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("documentID")

	var req dto.ApproveByRequesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApproveByRequester", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	request, err := h.signatureService.ApproveByRequester(c.Request.Context(), documentID, userID, req.Amount, req.SignatureImage)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Document has no workflow status"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to record requester approval", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record approval"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSignatureResponse(request))
}

// approveByStaff godoc
// @Summary Record the secretary's counter-signature
// @Description Creates the payment checkout, finalizes the document to completed and marks staff approval
// @Tags signature
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.ApproveByStaffResponse
// @Failure 400 {object} map[string]string "Document already paid"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Requester has not signed yet"
// @Failure 409 {object} map[string]string "Document is not in digitalSignature status"
// @Failure 500 {object} map[string]string "Failed to complete approval"
// @Security BearerAuth
// @Router /documents/{documentID}/signature/secretary [post]
func (h *signatureHandler) approveByStaff(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("documentID")

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, warning, err := h.signatureService.ApproveByStaff(c.Request.Context(), documentID, actorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to complete staff approval", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete approval"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ApproveByStaffResponse{
		Message:     "Document approved and completed",
		DocumentID:  documentID,
		CheckoutURL: payment.CheckoutURL,
		Warning:     warning,
	})
}

// getSignatureRequest godoc
// @Summary Get the sign-off state of a document
// @Tags signature
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.SignatureResponse
// @Failure 404 {object} map[string]string "No signature request exists"
// @Failure 500 {object} map[string]string "Failed to retrieve signature request"
// @Security BearerAuth
// @Router /documents/{documentID}/signature [get]
func (h *signatureHandler) getSignatureRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("documentID")

	request, err := h.signatureService.GetSignatureRequest(c.Request.Context(), documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No signature request exists for this document"})
		} else {
			logger.Error("Failed to get signature request from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve signature request"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSignatureResponse(request))
}
