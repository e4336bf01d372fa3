package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zapis-app/backend/internal/model"
	"github.com/zapis-app/backend/internal/repository/base"
	"github.com/zapis-app/backend/internal/schedule"
)

// ServiceRepository — каталог услуг специалистов
type ServiceRepository struct {
	*base.Repository
}

func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{Repository: base.NewRepository(pool)}
}

const serviceColumns = `id, specialist_id, name, description, price, duration, is_active, created_at`

// Create создаёт новую услугу
func (r *ServiceRepository) Create(ctx context.Context, svc *model.Service) error {
	query := `
		INSERT INTO services (specialist_id, name, description, price, duration, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.DB(ctx).QueryRow(
		ctx, query,
		svc.SpecialistID,
		svc.Name,
		svc.Description,
		svc.Price,
		svc.Duration,
		svc.IsActive,
	).Scan(&svc.ID, &svc.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("create service: duplicate name %q: %w", svc.Name, schedule.ErrValidation)
		}
		return fmt.Errorf("create service: %w", err)
	}

	return nil
}

// GetByID получает услугу по ID
func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*model.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE id = $1
	`

	var svc model.Service
	err := r.DB(ctx).QueryRow(ctx, query, id).Scan(
		&svc.ID,
		&svc.SpecialistID,
		&svc.Name,
		&svc.Description,
		&svc.Price,
		&svc.Duration,
		&svc.IsActive,
		&svc.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service by id: %w", err)
	}

	return &svc, nil
}

// GetBySpecialist получает услуги специалиста. При activeOnly скрытые
// услуги не возвращаются.
func (r *ServiceRepository) GetBySpecialist(ctx context.Context, specialistID int64, activeOnly bool) ([]*model.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE specialist_id = $1 AND ($2 = false OR is_active)
		ORDER BY name
	`

	rows, err := r.DB(ctx).Query(ctx, query, specialistID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("get services by specialist: %w", err)
	}
	defer rows.Close()

	var services []*model.Service
	for rows.Next() {
		var svc model.Service
		err := rows.Scan(
			&svc.ID,
			&svc.SpecialistID,
			&svc.Name,
			&svc.Description,
			&svc.Price,
			&svc.Duration,
			&svc.IsActive,
			&svc.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, &svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services: %w", err)
	}

	return services, nil
}

// GetByNames получает активные услуги специалиста по списку имён.
// Порядок результата не гарантируется; вызывающий сверяет полноту сам.
func (r *ServiceRepository) GetByNames(ctx context.Context, specialistID int64, names []string) ([]*model.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE specialist_id = $1 AND is_active AND name = ANY($2)
	`

	rows, err := r.DB(ctx).Query(ctx, query, specialistID, names)
	if err != nil {
		return nil, fmt.Errorf("get services by names: %w", err)
	}
	defer rows.Close()

	var services []*model.Service
	for rows.Next() {
		var svc model.Service
		err := rows.Scan(
			&svc.ID,
			&svc.SpecialistID,
			&svc.Name,
			&svc.Description,
			&svc.Price,
			&svc.Duration,
			&svc.IsActive,
			&svc.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, &svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services: %w", err)
	}

	return services, nil
}

// Update обновляет услугу
func (r *ServiceRepository) Update(ctx context.Context, svc *model.Service) error {
	query := `
		UPDATE services
		SET name = $1, description = $2, price = $3, duration = $4, is_active = $5
		WHERE id = $6
	`

	affected, err := r.ExecAffected(ctx, query,
		svc.Name,
		svc.Description,
		svc.Price,
		svc.Duration,
		svc.IsActive,
		svc.ID,
	)
	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("update service: duplicate name %q: %w", svc.Name, schedule.ErrValidation)
		}
		return fmt.Errorf("update service: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("update service: service %d not found", svc.ID)
	}

	return nil
}

// SetActive включает или скрывает услугу
func (r *ServiceRepository) SetActive(ctx context.Context, id int64, isActive bool) error {
	affected, err := r.ExecAffected(ctx, `UPDATE services SET is_active = $1 WHERE id = $2`, isActive, id)
	if err != nil {
		return fmt.Errorf("set service active: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("set service active: service %d not found", id)
	}

	return nil
}
