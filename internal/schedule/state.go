package schedule

import (
	"fmt"

	"github.com/zapis-app/backend/internal/model"
)

// Переходы жизненного цикла брони. Функции меняют слоты и запись в памяти;
// сохранение изменённых строк — забота координатора.

// Book переводит первичный слот Free -> Booked и помечает накрытые свободные
// слоты как occupied. Вызывается только после успешного CheckBooking.
func Book(appt *model.Appointment, primary *model.TimeSlot, covered []*model.TimeSlot) error {
	if !primary.IsFree() {
		return fmt.Errorf("slot %s: %w", primary.ID, ErrSlotUnavailable)
	}

	primary.Status = model.SlotStatusBooked
	primary.ParentSlotID = &primary.ID
	primary.AppointmentID = &appt.ID

	for _, slot := range covered {
		if !slot.IsFree() {
			return fmt.Errorf("covered slot %s: %w", slot.ID, ErrSlotUnavailable)
		}
		slot.Status = model.SlotStatusOccupied
		slot.ParentSlotID = &primary.ID
		slot.AppointmentID = &appt.ID
	}

	appt.Status = model.AppointmentStatusPending
	appt.PrimarySlotID = primary.ID
	appt.StartTime = primary.StartTime

	return nil
}

// Confirm переводит запись Pending -> Confirmed. Повторное подтверждение
// уже подтверждённой записи — успешный no-op: двойная отправка формы не
// должна приводить к ошибке.
func Confirm(appt *model.Appointment, slot *model.TimeSlot) error {
	if !slot.IsPrimary() {
		return fmt.Errorf("slot %s: %w", slot.ID, ErrNotPrimary)
	}

	switch appt.Status {
	case model.AppointmentStatusConfirmed:
		return nil
	case model.AppointmentStatusPending:
		appt.Status = model.AppointmentStatusConfirmed
		return nil
	default:
		return fmt.Errorf("appointment %s is %s: %w", appt.ID, appt.Status, ErrNotPending)
	}
}

// Cancel возвращает все слоты записи в Free и чистит метаданные брони.
// Допустим из Pending и из Confirmed; принимается только через первичный слот.
func Cancel(appt *model.Appointment, primary *model.TimeSlot, occupied []*model.TimeSlot) error {
	if !primary.IsPrimary() {
		return fmt.Errorf("slot %s: %w", primary.ID, ErrNotPrimary)
	}

	if !appt.IsActive() {
		return fmt.Errorf("appointment %s is %s: %w", appt.ID, appt.Status, ErrNotFound)
	}

	for _, slot := range occupied {
		slot.Status = model.SlotStatusFree
		slot.ParentSlotID = nil
		slot.AppointmentID = nil
	}

	appt.Status = model.AppointmentStatusCanceled
	return nil
}
