package http

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/zapis-app/backend/internal/model"
	"github.com/zapis-app/backend/internal/schedule"
	"github.com/zapis-app/backend/internal/service"
)

// AppointmentHandler — бронирование, подтверждение, отмена и выборки записей
type AppointmentHandler struct {
	svc         ScheduleAPI
	validate    *validator.Validate
	maxPageSize int
}

func NewAppointmentHandler(svc ScheduleAPI, maxPageSize int) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, validate: validator.New(), maxPageSize: maxPageSize}
}

func (h *AppointmentHandler) Register(private *echo.Group) {
	private.POST("/appointments", h.Book)
	private.POST("/appointments/:slotId/confirm", h.Confirm)
	private.POST("/appointments/:slotId/cancel", h.Cancel)
	private.GET("/appointments/pending", h.GetPending)
	private.GET("/appointments", h.GetActive)
	private.GET("/appointments/archive", h.GetArchive)
}

type bookRequest struct {
	SlotID   string   `json:"slotId" validate:"required,uuid"`
	Services []string `json:"services" validate:"required,min=1,dive,required"`
	Comment  string   `json:"comment"`
}

func (h *AppointmentHandler) Book(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, schedule.ErrValidation)
	}
	if err := h.validate.Struct(&req); err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	appt, err := h.svc.Book(c.Request().Context(), sessionFrom(c), service.BookRequest{
		SlotID:   slotID,
		Services: req.Services,
		Comment:  req.Comment,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, appt)
}

func (h *AppointmentHandler) Confirm(c echo.Context) error {
	slotID, err := uuid.Parse(c.Param("slotId"))
	if err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	appt, err := h.svc.Confirm(c.Request().Context(), sessionFrom(c), slotID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) Cancel(c echo.Context) error {
	slotID, err := uuid.Parse(c.Param("slotId"))
	if err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	if err := h.svc.Cancel(c.Request().Context(), sessionFrom(c), slotID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AppointmentHandler) GetPending(c echo.Context) error {
	appts, err := h.svc.GetPending(c.Request().Context(), sessionFrom(c))
	if err != nil {
		return writeError(c, err)
	}

	if appts == nil {
		appts = []*model.Appointment{}
	}

	return c.JSON(http.StatusOK, appts)
}

// GetActive отдаёт записи на дату из query-параметра, а без него —
// все предстоящие
func (h *AppointmentHandler) GetActive(c echo.Context) error {
	ctx := c.Request().Context()
	sess := sessionFrom(c)

	var appts []*model.Appointment
	var err error

	if rawDate := c.QueryParam("date"); rawDate != "" {
		date, parseErr := parseDate(rawDate)
		if parseErr != nil {
			return writeError(c, schedule.ErrValidation)
		}
		appts, err = h.svc.GetDayAppointments(ctx, sess, date)
	} else {
		appts, err = h.svc.GetUpcoming(ctx, sess)
	}

	if err != nil {
		return writeError(c, err)
	}

	if appts == nil {
		appts = []*model.Appointment{}
	}

	return c.JSON(http.StatusOK, appts)
}

type archiveResponse struct {
	Items      []*model.Appointment `json:"items"`
	NextCursor string               `json:"nextCursor,omitempty"`
}

func (h *AppointmentHandler) GetArchive(c echo.Context) error {
	pageSize := h.maxPageSize
	if raw := c.QueryParam("pageSize"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > h.maxPageSize {
			return writeError(c, schedule.ErrValidation)
		}
		pageSize = parsed
	}

	page, err := h.svc.GetArchive(c.Request().Context(), sessionFrom(c), c.QueryParam("cursor"), pageSize)
	if err != nil {
		return writeError(c, err)
	}

	resp := archiveResponse{Items: page.Items, NextCursor: page.NextCursor}
	if resp.Items == nil {
		resp.Items = []*model.Appointment{}
	}

	return c.JSON(http.StatusOK, resp)
}
