package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/zapis-app/backend/internal/model"
)

const sessionKey = "session"

// RequestLogger пишет в zap строку на каждый запрос
func RequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			handlerErr := next(c)

			logger.Info("Request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.Error(handlerErr),
			)

			return handlerErr
		}
	}
}

// SessionResolver извлекает Telegram ID из заголовка и кладёт контекст
// сессии в запрос. Подлинность ID гарантирует внешний слой (Telegram
// initData проверяется на входе в инфраструктуру, не здесь).
func SessionResolver(users SessionSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get("X-Telegram-User-Id")
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, errorResponse{
					Error:   "unauthorized",
					Message: "Не указан идентификатор пользователя",
				})
			}

			telegramID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorResponse{
					Error:   "unauthorized",
					Message: "Некорректный идентификатор пользователя",
				})
			}

			sess, err := users.ResolveSession(c.Request().Context(), telegramID)
			if err != nil {
				return writeError(c, err)
			}

			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// sessionFrom достаёт контекст сессии, положенный SessionResolver
func sessionFrom(c echo.Context) model.SessionContext {
	sess, _ := c.Get(sessionKey).(model.SessionContext)
	return sess
}
