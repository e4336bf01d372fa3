package http

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/zapis-app/backend/internal/model"
	"github.com/zapis-app/backend/internal/schedule"
)

// UserHandler — регистрация и выбор роли
type UserHandler struct {
	svc      UserAPI
	links    LinkAPI
	validate *validator.Validate
}

func NewUserHandler(svc UserAPI, links LinkAPI) *UserHandler {
	return &UserHandler{svc: svc, links: links, validate: validator.New()}
}

func (h *UserHandler) Register(public, private *echo.Group) {
	public.POST("/users/register", h.RegisterUser)
	public.GET("/links/:code", h.ResolveLink)
	private.PUT("/users/role", h.SetRole)
	private.POST("/links", h.CreateLink)
	private.GET("/links", h.GetLinks)
	private.DELETE("/links/:id", h.DeactivateLink)
}

type registerRequest struct {
	TelegramID   int64  `json:"telegramId" validate:"required"`
	Username     string `json:"username"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	LanguageCode string `json:"languageCode"`
	Role         string `json:"role"`
}

func (h *UserHandler) RegisterUser(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, schedule.ErrValidation)
	}
	if err := h.validate.Struct(&req); err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	user := &model.User{
		TelegramID:   req.TelegramID,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		LanguageCode: req.LanguageCode,
	}

	if req.Role != "" {
		role, err := model.ParseRole(req.Role)
		if err != nil {
			return writeError(c, schedule.ErrValidation)
		}
		user.Role = role
	}

	if err := h.svc.Register(c.Request().Context(), user); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

type setRoleRequest struct {
	TelegramID int64  `json:"telegramId" validate:"required"`
	Role       string `json:"role" validate:"required"`
}

func (h *UserHandler) SetRole(c echo.Context) error {
	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, schedule.ErrValidation)
	}
	if err := h.validate.Struct(&req); err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	role, err := model.ParseRole(req.Role)
	if err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	if err := h.svc.SetRole(c.Request().Context(), req.TelegramID, role); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

type createLinkRequest struct {
	MaxUses    *int `json:"maxUses" validate:"omitempty,gt=0"`
	TTLMinutes *int `json:"ttlMinutes" validate:"omitempty,gt=0"`
}

func (h *UserHandler) CreateLink(c echo.Context) error {
	var req createLinkRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, schedule.ErrValidation)
	}
	if err := h.validate.Struct(&req); err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	var ttl *time.Duration
	if req.TTLMinutes != nil {
		d := time.Duration(*req.TTLMinutes) * time.Minute
		ttl = &d
	}

	link, err := h.links.CreateLink(c.Request().Context(), sessionFrom(c), req.MaxUses, ttl)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, link)
}

type resolveLinkResponse struct {
	SpecialistID int64 `json:"specialistId"`
}

// ResolveLink открытый эндпоинт: по нему мини-апп открывает профиль
// специалиста из share-ссылки
func (h *UserHandler) ResolveLink(c echo.Context) error {
	specialistID, err := h.links.Resolve(c.Request().Context(), c.Param("code"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, resolveLinkResponse{SpecialistID: specialistID})
}

func (h *UserHandler) GetLinks(c echo.Context) error {
	links, err := h.links.GetLinks(c.Request().Context(), sessionFrom(c))
	if err != nil {
		return writeError(c, err)
	}

	if links == nil {
		links = []*model.ShareLink{}
	}

	return c.JSON(http.StatusOK, links)
}

func (h *UserHandler) DeactivateLink(c echo.Context) error {
	linkID, err := parseInt64(c.Param("id"))
	if err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	if err := h.links.DeactivateLink(c.Request().Context(), sessionFrom(c), linkID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
