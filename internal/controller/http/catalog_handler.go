package http

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/zapis-app/backend/internal/model"
	"github.com/zapis-app/backend/internal/schedule"
)

// CatalogHandler — каталог услуг специалиста
type CatalogHandler struct {
	svc      CatalogAPI
	validate *validator.Validate
}

func NewCatalogHandler(svc CatalogAPI) *CatalogHandler {
	return &CatalogHandler{svc: svc, validate: validator.New()}
}

func (h *CatalogHandler) Register(private *echo.Group) {
	private.GET("/catalog/:specialistId", h.GetCatalog)
	private.POST("/catalog/services", h.CreateService)
	private.PUT("/catalog/services/:id", h.UpdateService)
	private.DELETE("/catalog/services/:id", h.DeactivateService)
}

type serviceRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       int    `json:"price" validate:"gte=0"`
	Duration    int    `json:"duration" validate:"gt=0"`
}

func (h *CatalogHandler) GetCatalog(c echo.Context) error {
	specialistID, err := strconv.ParseInt(c.Param("specialistId"), 10, 64)
	if err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	services, err := h.svc.GetCatalog(c.Request().Context(), sessionFrom(c), specialistID)
	if err != nil {
		return writeError(c, err)
	}

	if services == nil {
		services = []*model.Service{}
	}

	return c.JSON(http.StatusOK, services)
}

func (h *CatalogHandler) CreateService(c echo.Context) error {
	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, schedule.ErrValidation)
	}
	if err := h.validate.Struct(&req); err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	svc := &model.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
	}

	if err := h.svc.CreateService(c.Request().Context(), sessionFrom(c), svc); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, svc)
}

func (h *CatalogHandler) UpdateService(c echo.Context) error {
	serviceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	var req serviceRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, schedule.ErrValidation)
	}
	if err := h.validate.Struct(&req); err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	svc := &model.Service{
		ID:          serviceID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		IsActive:    true,
	}

	if err := h.svc.UpdateService(c.Request().Context(), sessionFrom(c), svc); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, svc)
}

func (h *CatalogHandler) DeactivateService(c echo.Context) error {
	serviceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	if err := h.svc.DeactivateService(c.Request().Context(), sessionFrom(c), serviceID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
