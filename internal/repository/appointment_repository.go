package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zapis-app/backend/internal/model"
	"github.com/zapis-app/backend/internal/repository/base"
)

type AppointmentRepository struct {
	*base.Repository
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{Repository: base.NewRepository(pool)}
}

const appointmentColumns = `id, specialist_id, client_id, client_username, date, start_minute, services, total_price, total_duration, comment, status, primary_slot_id, created_at, updated_at`

// Create сохраняет новую запись
func (r *AppointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	query := `
		INSERT INTO appointments (id, specialist_id, client_id, client_username, date, start_minute, services, total_price, total_duration, comment, status, primary_slot_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	err := r.DB(ctx).QueryRow(
		ctx, query,
		appt.ID,
		appt.SpecialistID,
		appt.ClientID,
		appt.ClientUsername,
		appt.Date,
		int(appt.StartTime),
		appt.Services,
		appt.TotalPrice,
		appt.TotalDuration,
		appt.Comment,
		appt.Status,
		appt.PrimarySlotID,
	).Scan(&appt.CreatedAt, &appt.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}

	return nil
}

// GetByID получает запись по ID
func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE id = $1
	`

	appt, err := scanAppointment(r.DB(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment by id: %w", err)
	}

	return appt, nil
}

// GetByPrimarySlotID получает активную запись по её первичному слоту
func (r *AppointmentRepository) GetByPrimarySlotID(ctx context.Context, slotID uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE primary_slot_id = $1 AND status IN ('pending', 'confirmed')
	`

	appt, err := scanAppointment(r.DB(ctx).QueryRow(ctx, query, slotID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment by primary slot: %w", err)
	}

	return appt, nil
}

// UpdateStatus обновляет статус записи
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = now()
		WHERE id = $2
	`

	affected, err := r.ExecAffected(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("update appointment status: appointment %s not found", id)
	}

	return nil
}

// GetPendingBySpecialist получает неподтверждённые записи специалиста
func (r *AppointmentRepository) GetPendingBySpecialist(ctx context.Context, specialistID int64) ([]*model.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE specialist_id = $1 AND status = 'pending'
		ORDER BY date, start_minute
	`

	rows, err := r.DB(ctx).Query(ctx, query, specialistID)
	if err != nil {
		return nil, fmt.Errorf("get pending appointments: %w", err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// GetActiveByDay получает активные записи на дату.
// forSpecialist выбирает, чей это календарь: специалиста или клиента.
func (r *AppointmentRepository) GetActiveByDay(ctx context.Context, userID int64, forSpecialist bool, date time.Time) ([]*model.Appointment, error) {
	owner := "client_id"
	if forSpecialist {
		owner = "specialist_id"
	}

	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE ` + owner + ` = $1 AND date = $2 AND status IN ('pending', 'confirmed')
		ORDER BY start_minute
	`

	rows, err := r.DB(ctx).Query(ctx, query, userID, date)
	if err != nil {
		return nil, fmt.Errorf("get day appointments: %w", err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// GetUpcoming получает активные записи с сегодняшнего дня и дальше
func (r *AppointmentRepository) GetUpcoming(ctx context.Context, userID int64, forSpecialist bool, today time.Time) ([]*model.Appointment, error) {
	owner := "client_id"
	if forSpecialist {
		owner = "specialist_id"
	}

	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE ` + owner + ` = $1 AND date >= $2 AND status IN ('pending', 'confirmed')
		ORDER BY date, start_minute
	`

	rows, err := r.DB(ctx).Query(ctx, query, userID, today)
	if err != nil {
		return nil, fmt.Errorf("get upcoming appointments: %w", err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// GetArchivePage получает страницу архива: подтверждённые записи с прошедшей
// датой, от новых к старым. Курсор — (date, id) последней записи прошлой
// страницы; nil курсор означает первую страницу.
func (r *AppointmentRepository) GetArchivePage(ctx context.Context, userID int64, forSpecialist bool, today time.Time, cursorDate *time.Time, cursorID *uuid.UUID, pageSize int) ([]*model.Appointment, error) {
	owner := "client_id"
	if forSpecialist {
		owner = "specialist_id"
	}

	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE ` + owner + ` = $1
		  AND date < $2
		  AND status = 'confirmed'
		  AND ($3::date IS NULL OR (date, id) < ($3, $4))
		ORDER BY date DESC, id DESC
		LIMIT $5
	`

	rows, err := r.DB(ctx).Query(ctx, query, userID, today, cursorDate, cursorID, pageSize)
	if err != nil {
		return nil, fmt.Errorf("get archive page: %w", err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

func scanAppointment(row pgx.Row) (*model.Appointment, error) {
	var appt model.Appointment
	var startMinute int

	err := row.Scan(
		&appt.ID,
		&appt.SpecialistID,
		&appt.ClientID,
		&appt.ClientUsername,
		&appt.Date,
		&startMinute,
		&appt.Services,
		&appt.TotalPrice,
		&appt.TotalDuration,
		&appt.Comment,
		&appt.Status,
		&appt.PrimarySlotID,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.StartTime = model.DayTime(startMinute)
	return &appt, nil
}

func scanAppointments(rows pgx.Rows) ([]*model.Appointment, error) {
	var appts []*model.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appts = append(appts, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}

	return appts, nil
}
