package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Router собирает echo-приложение: middleware, открытые и закрытые группы
type Router struct {
	Schedule     *ScheduleHandler
	Appointments *AppointmentHandler
	Catalog      *CatalogHandler
	Users        *UserHandler
	Sessions     SessionSource
	Logger       *zap.Logger
	Metrics      prometheus.Gatherer
}

// Build возвращает готовый echo.Echo
func (r *Router) Build() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(RequestLogger(r.Logger))

	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(r.Metrics, promhttp.HandlerOpts{})))

	api := e.Group("/api/v1")

	// Открытые эндпоинты: просмотр расписания, регистрация, share-ссылки
	public := api.Group("")

	// Закрытые эндпоинты требуют пользователя и его роль
	private := api.Group("", SessionResolver(r.Sessions))

	r.Schedule.Register(public, private)
	r.Appointments.Register(private)
	r.Catalog.Register(private)
	r.Users.Register(public, private)

	return e
}
