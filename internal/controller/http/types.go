package http

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zapis-app/backend/internal/model"
	"github.com/zapis-app/backend/internal/service"
)

// Интерфейсы сервисов, которые нужны HTTP-слою. Реализуются сервисами
// из internal/service; в тестах обработчиков подменяются моками.

type ScheduleAPI interface {
	GetDay(ctx context.Context, specialistID int64, date time.Time) ([]*model.TimeSlot, error)
	CreateSlot(ctx context.Context, sess model.SessionContext, date time.Time, startTime model.DayTime, description string) (*model.TimeSlot, error)
	UpdateSlotDescription(ctx context.Context, sess model.SessionContext, slotID uuid.UUID, description string) (*model.TimeSlot, error)
	DeleteSlot(ctx context.Context, sess model.SessionContext, slotID uuid.UUID) error
	Book(ctx context.Context, sess model.SessionContext, req service.BookRequest) (*model.Appointment, error)
	Confirm(ctx context.Context, sess model.SessionContext, primarySlotID uuid.UUID) (*model.Appointment, error)
	Cancel(ctx context.Context, sess model.SessionContext, primarySlotID uuid.UUID) error
	GetPending(ctx context.Context, sess model.SessionContext) ([]*model.Appointment, error)
	GetDayAppointments(ctx context.Context, sess model.SessionContext, date time.Time) ([]*model.Appointment, error)
	GetUpcoming(ctx context.Context, sess model.SessionContext) ([]*model.Appointment, error)
	GetArchive(ctx context.Context, sess model.SessionContext, cursor string, pageSize int) (*service.ArchivePage, error)
}

type CatalogAPI interface {
	CreateService(ctx context.Context, sess model.SessionContext, svc *model.Service) error
	GetCatalog(ctx context.Context, sess model.SessionContext, specialistID int64) ([]*model.Service, error)
	UpdateService(ctx context.Context, sess model.SessionContext, svc *model.Service) error
	DeactivateService(ctx context.Context, sess model.SessionContext, serviceID int64) error
}

type LinkAPI interface {
	CreateLink(ctx context.Context, sess model.SessionContext, maxUses *int, ttl *time.Duration) (*model.ShareLink, error)
	Resolve(ctx context.Context, code string) (int64, error)
	GetLinks(ctx context.Context, sess model.SessionContext) ([]*model.ShareLink, error)
	DeactivateLink(ctx context.Context, sess model.SessionContext, linkID int64) error
}

type SessionSource interface {
	ResolveSession(ctx context.Context, telegramID int64) (model.SessionContext, error)
}

type UserAPI interface {
	SessionSource
	Register(ctx context.Context, user *model.User) error
	SetRole(ctx context.Context, telegramID int64, role model.Role) error
}
