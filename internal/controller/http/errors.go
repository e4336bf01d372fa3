package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zapis-app/backend/internal/schedule"
)

// errorResponse — тело ответа при ошибке. Поле error — стабильный код для
// мини-аппа, message — готовый текст для пользователя.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

var errorKinds = []struct {
	err     error
	code    string
	status  int
	message string
}{
	{schedule.ErrValidation, "validation", http.StatusBadRequest, "Некорректный запрос"},
	{schedule.ErrNotFound, "not_found", http.StatusNotFound, "Запись не найдена"},
	{schedule.ErrPermission, "permission", http.StatusForbidden, "Действие недоступно для вашей роли"},
	{schedule.ErrDuplicateStartTime, "duplicate_start_time", http.StatusConflict, "На это время слот уже существует"},
	{schedule.ErrNotFree, "not_free", http.StatusConflict, "Слот уже забронирован"},
	{schedule.ErrSlotUnavailable, "slot_unavailable", http.StatusConflict, "Слот недоступен, обновите расписание"},
	{schedule.ErrOverlap, "overlap", http.StatusConflict, "Время пересекается с другой записью"},
	{schedule.ErrNotPending, "not_pending", http.StatusConflict, "Запись не ожидает подтверждения"},
	{schedule.ErrNotPrimary, "validation", http.StatusBadRequest, "Действие доступно только для основного слота записи"},
	{schedule.ErrUpstream, "upstream_unavailable", http.StatusServiceUnavailable, "Сервис временно недоступен, попробуйте ещё раз"},
}

// writeError переводит ошибку движка в HTTP-ответ
func writeError(c echo.Context, err error) error {
	for _, kind := range errorKinds {
		if errors.Is(err, kind.err) {
			return c.JSON(kind.status, errorResponse{Error: kind.code, Message: kind.message})
		}
	}

	// Всё остальное — отказ хранилища или баг; наружу без деталей,
	// подробности пишет request-логгер
	return c.JSON(http.StatusServiceUnavailable, errorResponse{
		Error:   "upstream_unavailable",
		Message: "Сервис временно недоступен, попробуйте ещё раз",
	})
}
