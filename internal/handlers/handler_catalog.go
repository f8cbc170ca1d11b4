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

// catalogHandler handles HTTP requests for notarization reference data.
type catalogHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

// newCatalogHandler creates a new catalogHandler.
func newCatalogHandler(cs portssvc.CatalogSvcFacade) *catalogHandler {
	return &catalogHandler{
		catalogService: cs,
	}
}

// registerCatalogRoutes registers catalog routes. Reads are open to any
// authenticated caller; writes alter the priced catalog that documents
// snapshot from and are restricted to admins.
func registerCatalogRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := newCatalogHandler(catalogService)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	fields := rg.Group("/fields")
	{
		fields.POST("", adminOnly, h.createField)
		fields.GET("", h.listFields)
		fields.GET("/:fieldID/services", h.listServices)
	}

	services := rg.Group("/services")
	{
		services.POST("", adminOnly, h.createService)
		services.GET("/:serviceID", h.getService)
	}
}

// createField godoc
// @Summary Create a notarization field
// @Tags catalog
// @Accept json
// @Produce json
// @Param field body dto.CreateFieldRequest true "Field details"
// @Success 201 {object} dto.FieldResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 409 {object} map[string]string "Field already exists"
// @Failure 500 {object} map[string]string "Failed to create field"
// @Security BearerAuth
// @Router /fields [post]
func (h *catalogHandler) createField(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateField", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	field, err := h.catalogService.CreateField(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create field in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create field"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToFieldResponse(field))
}

// listFields godoc
// @Summary List notarization fields
// @Tags catalog
// @Produce json
// @Success 200 {array} dto.FieldResponse
// @Failure 500 {object} map[string]string "Failed to list fields"
// @Security BearerAuth
// @Router /fields [get]
func (h *catalogHandler) listFields(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fields, err := h.catalogService.ListFields(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list fields from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fields"})
		return
	}

	responses := make([]dto.FieldResponse, len(fields))
	for i := range fields {
		responses[i] = dto.ToFieldResponse(&fields[i])
	}
	c.JSON(http.StatusOK, responses)
}

// listServices godoc
// @Summary List services within a field
// @Tags catalog
// @Produce json
// @Param fieldID path string true "Field ID"
// @Success 200 {array} dto.ServiceResponse
// @Failure 500 {object} map[string]string "Failed to list services"
// @Security BearerAuth
// @Router /fields/{fieldID}/services [get]
func (h *catalogHandler) listServices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fieldID := c.Param("fieldID")

	services, err := h.catalogService.ListServices(c.Request.Context(), fieldID)
	if err != nil {
		logger.Error("Failed to list services from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list services"})
		return
	}

	responses := make([]dto.ServiceResponse, len(services))
	for i := range services {
		responses[i] = dto.ToServiceResponse(&services[i])
	}
	c.JSON(http.StatusOK, responses)
}

// createService godoc
// @Summary Create a notarization service within a field
// @Tags catalog
// @Accept json
// @Produce json
// @Param service body dto.CreateServiceRequest true "Service details"
// @Success 201 {object} dto.ServiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 404 {object} map[string]string "Field not found"
// @Failure 409 {object} map[string]string "Service already exists"
// @Failure 500 {object} map[string]string "Failed to create service"
// @Security BearerAuth
// @Router /services [post]
func (h *catalogHandler) createService(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateService", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	service, err := h.catalogService.CreateService(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Field not found"})
		case errors.Is(err, apperrors.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create service in service layer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToServiceResponse(service))
}

// getService godoc
// @Summary Get a notarization service by ID
// @Tags catalog
// @Produce json
// @Param serviceID path string true "Service ID"
// @Success 200 {object} dto.ServiceResponse
// @Failure 404 {object} map[string]string "Service not found"
// @Failure 500 {object} map[string]string "Failed to retrieve service"
// @Security BearerAuth
// @Router /services/{serviceID} [get]
func (h *catalogHandler) getService(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	serviceID := c.Param("serviceID")

	service, err := h.catalogService.GetService(c.Request.Context(), serviceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		} else {
			logger.Error("Failed to get service from service layer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve service"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToServiceResponse(service))
}
