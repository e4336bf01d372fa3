package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"   // Ожидает подтверждения специалиста
	AppointmentStatusConfirmed AppointmentStatus = "confirmed" // Подтверждена
	AppointmentStatusCanceled  AppointmentStatus = "canceled"  // Отменена, слоты освобождены
)

// Appointment — запись клиента к специалисту. Владеет списком занятых слотов;
// первый слот в списке — первичный (через него идут подтверждение и отмена).
type Appointment struct {
	ID             uuid.UUID         `json:"id"`
	SpecialistID   int64             `json:"specialistId"`
	ClientID       int64             `json:"clientId"`
	ClientUsername string            `json:"clientUsername"`
	Date           time.Time         `json:"date"`
	StartTime      DayTime           `json:"startTime"`
	Services       []string          `json:"services"`
	TotalPrice     int               `json:"totalPrice"` // в копейках/центах
	TotalDuration  int               `json:"totalDuration"` // в минутах
	Comment        string            `json:"comment"`
	Status         AppointmentStatus `json:"status"`
	PrimarySlotID  uuid.UUID         `json:"primarySlotId"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`

	// Заполняется при чтении, не хранится в строке записи
	SlotIDs []uuid.UUID `json:"slotIds,omitempty"`
}

// IsActive сообщает, занимает ли запись слоты в расписании
func (a *Appointment) IsActive() bool {
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
}

// End возвращает время окончания записи
func (a *Appointment) End() DayTime {
	return a.StartTime.Add(a.TotalDuration)
}
