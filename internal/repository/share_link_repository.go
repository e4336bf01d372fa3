package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zapis-app/backend/internal/model"
	"github.com/zapis-app/backend/internal/repository/base"
)

type ShareLinkRepository struct {
	*base.Repository
}

func NewShareLinkRepository(pool *pgxpool.Pool) *ShareLinkRepository {
	return &ShareLinkRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новую ссылку-приглашение
func (r *ShareLinkRepository) Create(ctx context.Context, link *model.ShareLink) error {
	query := `
		INSERT INTO share_links (specialist_id, code, max_uses, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, current_uses, created_at
	`

	err := r.DB(ctx).QueryRow(
		ctx, query,
		link.SpecialistID,
		link.Code,
		link.MaxUses,
		link.ExpiresAt,
		link.IsActive,
	).Scan(&link.ID, &link.CurrentUses, &link.CreatedAt)

	if err != nil {
		return fmt.Errorf("create share link: %w", err)
	}

	return nil
}

// GetByCode получает ссылку по коду
func (r *ShareLinkRepository) GetByCode(ctx context.Context, code string) (*model.ShareLink, error) {
	query := `
		SELECT id, specialist_id, code, max_uses, current_uses, expires_at, is_active, created_at
		FROM share_links
		WHERE code = $1
	`

	var link model.ShareLink
	err := r.DB(ctx).QueryRow(ctx, query, code).Scan(
		&link.ID,
		&link.SpecialistID,
		&link.Code,
		&link.MaxUses,
		&link.CurrentUses,
		&link.ExpiresAt,
		&link.IsActive,
		&link.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get share link by code: %w", err)
	}

	return &link, nil
}

// GetBySpecialist получает все ссылки специалиста
func (r *ShareLinkRepository) GetBySpecialist(ctx context.Context, specialistID int64) ([]*model.ShareLink, error) {
	query := `
		SELECT id, specialist_id, code, max_uses, current_uses, expires_at, is_active, created_at
		FROM share_links
		WHERE specialist_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB(ctx).Query(ctx, query, specialistID)
	if err != nil {
		return nil, fmt.Errorf("get share links by specialist: %w", err)
	}
	defer rows.Close()

	var links []*model.ShareLink
	for rows.Next() {
		var link model.ShareLink
		err := rows.Scan(
			&link.ID,
			&link.SpecialistID,
			&link.Code,
			&link.MaxUses,
			&link.CurrentUses,
			&link.ExpiresAt,
			&link.IsActive,
			&link.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan share link: %w", err)
		}
		links = append(links, &link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate share links: %w", err)
	}

	return links, nil
}

// IncrementUses увеличивает счётчик использований
func (r *ShareLinkRepository) IncrementUses(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `UPDATE share_links SET current_uses = current_uses + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment share link uses: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("increment share link uses: link %d not found", id)
	}

	return nil
}

// Deactivate отключает ссылку
func (r *ShareLinkRepository) Deactivate(ctx context.Context, id int64, specialistID int64) error {
	affected, err := r.ExecAffected(ctx, `UPDATE share_links SET is_active = false WHERE id = $1 AND specialist_id = $2`, id, specialistID)
	if err != nil {
		return fmt.Errorf("deactivate share link: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("deactivate share link: link %d not found", id)
	}

	return nil
}
