package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/zapis-app/backend/internal/model"
	"github.com/zapis-app/backend/internal/schedule"
)

// ScheduleHandler — слоты расписания специалиста
type ScheduleHandler struct {
	svc      ScheduleAPI
	validate *validator.Validate
}

func NewScheduleHandler(svc ScheduleAPI) *ScheduleHandler {
	return &ScheduleHandler{svc: svc, validate: validator.New()}
}

func (h *ScheduleHandler) Register(public, private *echo.Group) {
	public.GET("/schedule", h.GetDay)
	private.POST("/schedule/slots", h.CreateSlot)
	private.PUT("/schedule/slots/:id", h.UpdateSlot)
	private.DELETE("/schedule/slots/:id", h.DeleteSlot)
}

// GetDay отдаёт слоты специалиста на дату. Открытый эндпоинт: клиент
// смотрит расписание до записи.
func (h *ScheduleHandler) GetDay(c echo.Context) error {
	specialistID, err := strconv.ParseInt(c.QueryParam("specialistId"), 10, 64)
	if err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	date, err := parseDate(c.QueryParam("date"))
	if err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	slots, err := h.svc.GetDay(c.Request().Context(), specialistID, date)
	if err != nil {
		return writeError(c, err)
	}

	if slots == nil {
		slots = []*model.TimeSlot{}
	}

	return c.JSON(http.StatusOK, slots)
}

type createSlotRequest struct {
	Date        string `json:"date" validate:"required"`
	StartTime   string `json:"startTime" validate:"required"`
	Description string `json:"description"`
}

func (h *ScheduleHandler) CreateSlot(c echo.Context) error {
	var req createSlotRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, schedule.ErrValidation)
	}
	if err := h.validate.Struct(&req); err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	startTime, err := model.ParseDayTime(req.StartTime)
	if err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	slot, err := h.svc.CreateSlot(c.Request().Context(), sessionFrom(c), date, startTime, req.Description)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, slot)
}

type updateSlotRequest struct {
	Description string `json:"description"`
}

func (h *ScheduleHandler) UpdateSlot(c echo.Context) error {
	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	var req updateSlotRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	slot, err := h.svc.UpdateSlotDescription(c.Request().Context(), sessionFrom(c), slotID, req.Description)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, slot)
}

func (h *ScheduleHandler) DeleteSlot(c echo.Context) error {
	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return writeError(c, schedule.ErrValidation)
	}

	if err := h.svc.DeleteSlot(c.Request().Context(), sessionFrom(c), slotID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// parseDate разбирает дату формата YYYY-MM-DD (так её шлёт мини-апп)
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
