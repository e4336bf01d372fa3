package service

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/zapis-app/backend/internal/model"
	"github.com/zapis-app/backend/internal/schedule"
)

type ShareLinkRepo interface {
	Create(ctx context.Context, link *model.ShareLink) error
	GetByCode(ctx context.Context, code string) (*model.ShareLink, error)
	GetBySpecialist(ctx context.Context, specialistID int64) ([]*model.ShareLink, error)
	IncrementUses(ctx context.Context, id int64) error
	Deactivate(ctx context.Context, id int64, specialistID int64) error
}

// LinkService — короткие коды, по которым клиент открывает страницу записи
// специалиста (кнопка "поделиться профилем" в мини-аппе)
type LinkService struct {
	repo   ShareLinkRepo
	logger *zap.Logger
}

func NewLinkService(repo ShareLinkRepo, logger *zap.Logger) *LinkService {
	return &LinkService{repo: repo, logger: logger}
}

// CreateLink выпускает новый код для специалиста
func (s *LinkService) CreateLink(ctx context.Context, sess model.SessionContext, maxUses *int, ttl *time.Duration) (*model.ShareLink, error) {
	if sess.Role != model.RoleSpecialist {
		return nil, fmt.Errorf("create link: %w", schedule.ErrPermission)
	}

	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("generate link code: %w", err)
	}

	link := &model.ShareLink{
		SpecialistID: sess.UserID,
		Code:         code,
		MaxUses:      maxUses,
		IsActive:     true,
	}

	if ttl != nil {
		expires := time.Now().Add(*ttl)
		link.ExpiresAt = &expires
	}

	if err := s.repo.Create(ctx, link); err != nil {
		return nil, err
	}

	s.logger.Info("Share link created",
		zap.Int64("specialist_id", sess.UserID),
		zap.String("code", code),
	)

	return link, nil
}

// Resolve находит специалиста по коду и учитывает использование
func (s *LinkService) Resolve(ctx context.Context, code string) (int64, error) {
	link, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return 0, err
	}
	if link == nil || !link.IsValid() {
		return 0, fmt.Errorf("share link %q: %w", code, schedule.ErrNotFound)
	}

	if err := s.repo.IncrementUses(ctx, link.ID); err != nil {
		return 0, err
	}

	return link.SpecialistID, nil
}

// GetLinks возвращает ссылки специалиста
func (s *LinkService) GetLinks(ctx context.Context, sess model.SessionContext) ([]*model.ShareLink, error) {
	if sess.Role != model.RoleSpecialist {
		return nil, fmt.Errorf("get links: %w", schedule.ErrPermission)
	}
	return s.repo.GetBySpecialist(ctx, sess.UserID)
}

// DeactivateLink отключает код
func (s *LinkService) DeactivateLink(ctx context.Context, sess model.SessionContext, linkID int64) error {
	if sess.Role != model.RoleSpecialist {
		return fmt.Errorf("deactivate link: %w", schedule.ErrPermission)
	}
	return s.repo.Deactivate(ctx, linkID, sess.UserID)
}

// generateCode выпускает короткий код без неоднозначных символов
func generateCode() (string, error) {
	buf := make([]byte, 5)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf), nil
}
