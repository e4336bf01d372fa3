package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/zapis-app/backend/internal/model"
	"github.com/zapis-app/backend/internal/schedule"
)

type CatalogRepo interface {
	Create(ctx context.Context, svc *model.Service) error
	GetByID(ctx context.Context, id int64) (*model.Service, error)
	GetBySpecialist(ctx context.Context, specialistID int64, activeOnly bool) ([]*model.Service, error)
	GetByNames(ctx context.Context, specialistID int64, names []string) ([]*model.Service, error)
	Update(ctx context.Context, svc *model.Service) error
	SetActive(ctx context.Context, id int64, isActive bool) error
}

// CatalogService — каталог услуг специалиста. Движок расписания читает его
// при бронировании; здесь живёт CRUD самого каталога.
type CatalogService struct {
	repo   CatalogRepo
	logger *zap.Logger
}

func NewCatalogService(repo CatalogRepo, logger *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, logger: logger}
}

// CreateService добавляет услугу в каталог специалиста
func (s *CatalogService) CreateService(ctx context.Context, sess model.SessionContext, svc *model.Service) error {
	if sess.Role != model.RoleSpecialist {
		return fmt.Errorf("create service: %w", schedule.ErrPermission)
	}

	svc.SpecialistID = sess.UserID
	svc.Name = strings.TrimSpace(svc.Name)

	if err := validateService(svc); err != nil {
		return err
	}

	svc.IsActive = true
	if err := s.repo.Create(ctx, svc); err != nil {
		return err
	}

	s.logger.Info("Service created",
		zap.Int64("service_id", svc.ID),
		zap.Int64("specialist_id", sess.UserID),
		zap.String("name", svc.Name),
		zap.Int("price", svc.Price),
		zap.Int("duration", svc.Duration),
	)

	return nil
}

// GetCatalog возвращает услуги специалиста. Клиенты видят только активные.
func (s *CatalogService) GetCatalog(ctx context.Context, sess model.SessionContext, specialistID int64) ([]*model.Service, error) {
	ownView := sess.Role == model.RoleSpecialist && sess.UserID == specialistID
	return s.repo.GetBySpecialist(ctx, specialistID, !ownView)
}

// UpdateService обновляет услугу специалиста
func (s *CatalogService) UpdateService(ctx context.Context, sess model.SessionContext, svc *model.Service) error {
	if sess.Role != model.RoleSpecialist {
		return fmt.Errorf("update service: %w", schedule.ErrPermission)
	}

	existing, err := s.repo.GetByID(ctx, svc.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("service %d: %w", svc.ID, schedule.ErrNotFound)
	}

	if existing.SpecialistID != sess.UserID {
		return fmt.Errorf("service %d: %w", svc.ID, schedule.ErrPermission)
	}

	svc.SpecialistID = existing.SpecialistID
	svc.Name = strings.TrimSpace(svc.Name)

	if err := validateService(svc); err != nil {
		return err
	}

	return s.repo.Update(ctx, svc)
}

// DeactivateService скрывает услугу из каталога. История записей на неё
// остаётся, поэтому строка не удаляется.
func (s *CatalogService) DeactivateService(ctx context.Context, sess model.SessionContext, serviceID int64) error {
	if sess.Role != model.RoleSpecialist {
		return fmt.Errorf("deactivate service: %w", schedule.ErrPermission)
	}

	existing, err := s.repo.GetByID(ctx, serviceID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("service %d: %w", serviceID, schedule.ErrNotFound)
	}

	if existing.SpecialistID != sess.UserID {
		return fmt.Errorf("service %d: %w", serviceID, schedule.ErrPermission)
	}

	return s.repo.SetActive(ctx, serviceID, false)
}

func validateService(svc *model.Service) error {
	if svc.Name == "" {
		return fmt.Errorf("service name is empty: %w", schedule.ErrValidation)
	}
	if svc.Price < 0 {
		return fmt.Errorf("service price is negative: %w", schedule.ErrValidation)
	}
	if svc.Duration <= 0 {
		return fmt.Errorf("service duration is non-positive: %w", schedule.ErrValidation)
	}
	return nil
}
