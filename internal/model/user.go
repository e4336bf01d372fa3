package model

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleSpecialist Role = "specialist"
)

// ParseRole разбирает роль из внешнего представления
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient:
		return RoleClient, nil
	case RoleSpecialist:
		return RoleSpecialist, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

type User struct {
	ID           int64     `json:"id"`
	TelegramID   int64     `json:"telegram_id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	LanguageCode string    `json:"language_code"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionContext — кто выполняет операцию. Передаётся в каждый вызов
// координатора явно, без глобального состояния сессии.
type SessionContext struct {
	UserID int64
	Role   Role
}
