package model

import "time"

// Service — услуга из каталога специалиста. Имя уникально в пределах
// специалиста; стоимость и длительность записи считаются по каталогу
// на момент бронирования.
type Service struct {
	ID           int64     `json:"id"`
	SpecialistID int64     `json:"specialistId"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        int       `json:"price"`    // в копейках/центах
	Duration     int       `json:"duration"` // в минутах
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}
