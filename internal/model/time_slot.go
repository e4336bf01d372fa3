package model

import (
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotStatusFree     SlotStatus = "free"
	SlotStatusBooked   SlotStatus = "booked"   // первичный слот брони
	SlotStatusOccupied SlotStatus = "occupied" // слот, накрытый чужой бронёй
)

// TimeSlot — единица расписания специалиста: одна дата, одно время начала.
// Пара (specialist_id, date, start_time) уникальна.
type TimeSlot struct {
	ID           uuid.UUID  `json:"id"`
	SpecialistID int64      `json:"specialistId"`
	Date         time.Time  `json:"date"` // только дата, время обнулено (UTC)
	StartTime    DayTime    `json:"startTime"`
	Status       SlotStatus `json:"status"`
	Description  string     `json:"description"`

	// ParentSlotID указывает на первичный слот брони. У свободного слота nil,
	// у первичного слота равен собственному ID.
	ParentSlotID  *uuid.UUID `json:"parentSlotId"`
	AppointmentID *uuid.UUID `json:"appointmentId"`

	CreatedAt time.Time `json:"createdAt"`
}

// IsFree сообщает, можно ли слот бронировать, редактировать или удалять
func (s *TimeSlot) IsFree() bool {
	return s.Status == SlotStatusFree
}

// IsPrimary сообщает, является ли слот первичным для своей брони.
// Подтверждение и отмена принимаются только через первичный слот.
func (s *TimeSlot) IsPrimary() bool {
	return s.ParentSlotID != nil && *s.ParentSlotID == s.ID
}
