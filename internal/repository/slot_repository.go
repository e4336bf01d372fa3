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
	"github.com/zapis-app/backend/internal/schedule"
)

type SlotRepository struct {
	*base.Repository
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{Repository: base.NewRepository(pool)}
}

const slotColumns = `id, specialist_id, date, start_minute, status, description, parent_slot_id, appointment_id, created_at`

// GetDay получает слоты специалиста на дату, по возрастанию времени начала
func (r *SlotRepository) GetDay(ctx context.Context, specialistID int64, date time.Time) ([]*model.TimeSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM time_slots
		WHERE specialist_id = $1 AND date = $2
		ORDER BY start_minute
	`

	rows, err := r.DB(ctx).Query(ctx, query, specialistID, date)
	if err != nil {
		return nil, fmt.Errorf("get day slots: %w", err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// GetDayForUpdate получает слоты дня с блокировкой строк. Вызывается внутри
// транзакции координатора: два конкурирующих бронирования одного дня
// сериализуются на этих строках.
func (r *SlotRepository) GetDayForUpdate(ctx context.Context, specialistID int64, date time.Time) ([]*model.TimeSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM time_slots
		WHERE specialist_id = $1 AND date = $2
		ORDER BY start_minute
		FOR UPDATE
	`

	rows, err := r.DB(ctx).Query(ctx, query, specialistID, date)
	if err != nil {
		return nil, fmt.Errorf("get day slots for update: %w", err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TimeSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM time_slots
		WHERE id = $1
	`

	slot, err := scanSlot(r.DB(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return slot, nil
}

// Insert сохраняет новый слот
func (r *SlotRepository) Insert(ctx context.Context, slot *model.TimeSlot) error {
	query := `
		INSERT INTO time_slots (id, specialist_id, date, start_minute, status, description, parent_slot_id, appointment_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := r.DB(ctx).QueryRow(
		ctx, query,
		slot.ID,
		slot.SpecialistID,
		slot.Date,
		int(slot.StartTime),
		slot.Status,
		slot.Description,
		slot.ParentSlotID,
		slot.AppointmentID,
	).Scan(&slot.CreatedAt)

	if err != nil {
		// Блокировка дня не мешает конкурентной вставке новой строки,
		// поэтому гонку за время начала ловит уникальный индекс
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("insert slot: %w", schedule.ErrDuplicateStartTime)
		}
		return fmt.Errorf("insert slot: %w", err)
	}

	return nil
}

// Update сохраняет изменяемые поля слота
func (r *SlotRepository) Update(ctx context.Context, slot *model.TimeSlot) error {
	query := `
		UPDATE time_slots
		SET status = $1, description = $2, parent_slot_id = $3, appointment_id = $4
		WHERE id = $5
	`

	affected, err := r.ExecAffected(ctx, query,
		slot.Status,
		slot.Description,
		slot.ParentSlotID,
		slot.AppointmentID,
		slot.ID,
	)
	if err != nil {
		return fmt.Errorf("update slot: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("update slot: slot %s not found", slot.ID)
	}

	return nil
}

// Delete удаляет слот
func (r *SlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM time_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("delete slot: slot %s not found", id)
	}

	return nil
}

// GetByAppointmentID получает все слоты, занятые записью
func (r *SlotRepository) GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) ([]*model.TimeSlot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM time_slots
		WHERE appointment_id = $1
		ORDER BY start_minute
	`

	rows, err := r.DB(ctx).Query(ctx, query, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("get slots by appointment: %w", err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

func scanSlot(row pgx.Row) (*model.TimeSlot, error) {
	var slot model.TimeSlot
	var startMinute int

	err := row.Scan(
		&slot.ID,
		&slot.SpecialistID,
		&slot.Date,
		&startMinute,
		&slot.Status,
		&slot.Description,
		&slot.ParentSlotID,
		&slot.AppointmentID,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.StartTime = model.DayTime(startMinute)
	return &slot, nil
}

func scanSlots(rows pgx.Rows) ([]*model.TimeSlot, error) {
	var slots []*model.TimeSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slots: %w", err)
	}

	return slots, nil
}
