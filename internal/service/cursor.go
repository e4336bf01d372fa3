package service

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// archiveCursor — позиция в архиве: дата и ID последней записи страницы.
// Наружу отдаётся непрозрачной base64-строкой.
type archiveCursor struct {
	Date time.Time
	ID   uuid.UUID
}

func encodeCursor(c archiveCursor) string {
	raw := fmt.Sprintf("%s|%s", c.Date.Format("2006-01-02"), c.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(s string) (archiveCursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return archiveCursor{}, fmt.Errorf("decode cursor: %w", err)
	}

	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return archiveCursor{}, fmt.Errorf("decode cursor: malformed payload")
	}

	date, err := time.Parse("2006-01-02", parts[0])
	if err != nil {
		return archiveCursor{}, fmt.Errorf("decode cursor date: %w", err)
	}

	id, err := uuid.Parse(parts[1])
	if err != nil {
		return archiveCursor{}, fmt.Errorf("decode cursor id: %w", err)
	}

	return archiveCursor{Date: date, ID: id}, nil
}
