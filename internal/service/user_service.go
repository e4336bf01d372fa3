package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/zapis-app/backend/internal/model"
	"github.com/zapis-app/backend/internal/schedule"
)

type UserRepo interface {
	Upsert(ctx context.Context, user *model.User) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	SetRole(ctx context.Context, telegramID int64, role model.Role) error
}

// UserService — регистрация при первом входе и резолв роли.
// Аутентификация внешняя: Telegram ID приходит уже проверенным.
type UserService struct {
	repo   UserRepo
	logger *zap.Logger
}

func NewUserService(repo UserRepo, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Register создаёт пользователя при первом входе или обновляет его данные
func (s *UserService) Register(ctx context.Context, user *model.User) error {
	if user.Role == "" {
		user.Role = model.RoleClient
	}

	if err := s.repo.Upsert(ctx, user); err != nil {
		return err
	}

	s.logger.Info("User registered",
		zap.Int64("telegram_id", user.TelegramID),
		zap.String("role", string(user.Role)),
	)

	return nil
}

// ResolveSession строит контекст сессии по Telegram ID
func (s *UserService) ResolveSession(ctx context.Context, telegramID int64) (model.SessionContext, error) {
	user, err := s.repo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return model.SessionContext{}, err
	}
	if user == nil {
		return model.SessionContext{}, fmt.Errorf("user %d: %w", telegramID, schedule.ErrNotFound)
	}

	return model.SessionContext{UserID: user.TelegramID, Role: user.Role}, nil
}

// SetRole меняет роль пользователя (экран выбора роли в мини-аппе)
func (s *UserService) SetRole(ctx context.Context, telegramID int64, role model.Role) error {
	if err := s.repo.SetRole(ctx, telegramID, role); err != nil {
		return err
	}

	s.logger.Info("User role changed",
		zap.Int64("telegram_id", telegramID),
		zap.String("role", string(role)),
	)

	return nil
}
