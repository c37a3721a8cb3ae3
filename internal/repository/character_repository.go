package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"hero-forge/internal/domain"
)

type CharacterRepository interface {
	Create(ctx context.Context, character *domain.Character) error
	GetByID(ctx context.Context, id int64) (*domain.Character, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Character, error)
	Update(ctx context.Context, character *domain.Character) error
	Delete(ctx context.Context, id int64) error
	ExistsByNameForOwner(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error)
	SetShared(ctx context.Context, id int64, shared bool) error
	SetPortraitURL(ctx context.Context, id int64, url *string) error
	// ReviewTransition is the compare-and-swap write behind Approve/Reject:
	// the row is only updated while still Pending, so a second reviewer
	// deterministically gets zero rows affected.
	ReviewTransition(ctx context.Context, id int64, to domain.CharacterStatus, reviewerID int64, reason *string) (bool, error)
	ListPending(ctx context.Context, params domain.PaginationParams) ([]domain.Character, int64, error)
	ListShared(ctx context.Context, filter domain.GalleryFilter, params domain.PaginationParams) ([]domain.Character, int64, error)
}

type characterRepository struct {
	db *sqlx.DB
}

func NewCharacterRepository(db *sqlx.DB) CharacterRepository {
	return &characterRepository{db: db}
}

func (r *characterRepository) Create(ctx context.Context, character *domain.Character) error {
	query := `
		INSERT INTO characters (
			owner_id, name, class_id, gender,
			skin_color, eye_color, hair_color, hair_style,
			eye_shape, nose_shape, mouth_shape, face_shape,
			facial_hair, body_type, status, is_shared
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		character.OwnerID, character.Name, character.ClassID, character.Gender,
		character.SkinColor, character.EyeColor, character.HairColor, character.HairStyle,
		character.EyeShape, character.NoseShape, character.MouthShape, character.FaceShape,
		character.FacialHair, character.BodyType, character.Status, character.IsShared,
	).Scan(&character.ID, &character.CreatedAt, &character.UpdatedAt)
}

func (r *characterRepository) GetByID(ctx context.Context, id int64) (*domain.Character, error) {
	var character domain.Character
	query := `SELECT * FROM characters WHERE id = $1`

	err := r.db.GetContext(ctx, &character, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &character, nil
}

func (r *characterRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Character, error) {
	var characters []domain.Character
	query := `SELECT * FROM characters WHERE owner_id = $1 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &characters, query, ownerID)
	return characters, err
}

func (r *characterRepository) Update(ctx context.Context, character *domain.Character) error {
	query := `
		UPDATE characters SET
			name = $2, class_id = $3, gender = $4,
			skin_color = $5, eye_color = $6, hair_color = $7, hair_style = $8,
			eye_shape = $9, nose_shape = $10, mouth_shape = $11, face_shape = $12,
			facial_hair = $13, body_type = $14, status = $15, is_shared = $16,
			rejection_reason = $17, reviewed_by = $18, reviewed_at = $19,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		character.ID, character.Name, character.ClassID, character.Gender,
		character.SkinColor, character.EyeColor, character.HairColor, character.HairStyle,
		character.EyeShape, character.NoseShape, character.MouthShape, character.FaceShape,
		character.FacialHair, character.BodyType, character.Status, character.IsShared,
		character.RejectionReason, character.ReviewedBy, character.ReviewedAt,
	).Scan(&character.UpdatedAt)
}

func (r *characterRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM characters WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *characterRepository) ExistsByNameForOwner(ctx context.Context, ownerID int64, name string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM characters WHERE owner_id = $1 AND name = $2 AND id <> $3)`

	err := r.db.GetContext(ctx, &exists, query, ownerID, name, excludeID)
	return exists, err
}

func (r *characterRepository) SetShared(ctx context.Context, id int64, shared bool) error {
	query := `UPDATE characters SET is_shared = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, shared)
	return err
}

func (r *characterRepository) SetPortraitURL(ctx context.Context, id int64, url *string) error {
	query := `UPDATE characters SET portrait_url = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, url)
	return err
}

func (r *characterRepository) ReviewTransition(ctx context.Context, id int64, to domain.CharacterStatus, reviewerID int64, reason *string) (bool, error) {
	query := `
		UPDATE characters SET
			status = $2, is_shared = FALSE,
			reviewed_by = $3, reviewed_at = $4, rejection_reason = $5,
			updated_at = NOW()
		WHERE id = $1 AND status = $6`

	res, err := r.db.ExecContext(ctx, query, id, to, reviewerID, time.Now(), reason, domain.CharacterPending)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func (r *characterRepository) ListPending(ctx context.Context, params domain.PaginationParams) ([]domain.Character, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM characters WHERE status = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, domain.CharacterPending); err != nil {
		return nil, 0, err
	}

	// Oldest first so the queue drains fairly.
	query := `
		SELECT
			c.*,
			u.id AS owner_user_id, u.display_name AS owner_display_name
		FROM characters c
		INNER JOIN users u ON c.owner_id = u.id
		WHERE c.status = $1
		ORDER BY c.updated_at ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryxContext(ctx, query, domain.CharacterPending, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var characters []domain.Character
	for rows.Next() {
		var row struct {
			domain.Character
			OwnerUserID      int64  `db:"owner_user_id"`
			OwnerDisplayName string `db:"owner_display_name"`
		}
		if err := rows.StructScan(&row); err != nil {
			return nil, 0, err
		}
		row.Character.Owner = &domain.CharacterOwner{ID: row.OwnerUserID, DisplayName: row.OwnerDisplayName}
		characters = append(characters, row.Character)
	}

	return characters, total, rows.Err()
}

func (r *characterRepository) ListShared(ctx context.Context, filter domain.GalleryFilter, params domain.PaginationParams) ([]domain.Character, int64, error) {
	where := `c.status = 'APPROVED' AND c.is_shared = TRUE`
	args := []interface{}{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND c.name ILIKE $%d", len(args))
	}
	if filter.ClassID != nil {
		args = append(args, *filter.ClassID)
		where += fmt.Sprintf(" AND c.class_id = $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM characters c WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	orderBy := filter.Sort.OrderBy()
	args = append(args, params.PageSize, params.Offset())
	query := fmt.Sprintf(`
		SELECT
			c.*,
			u.id AS owner_user_id, u.display_name AS owner_display_name
		FROM characters c
		INNER JOIN users u ON c.owner_id = u.id
		WHERE %s
		ORDER BY c.%s
		LIMIT $%d OFFSET $%d`, where, orderBy, len(args)-1, len(args))

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var characters []domain.Character
	for rows.Next() {
		var row struct {
			domain.Character
			OwnerUserID      int64  `db:"owner_user_id"`
			OwnerDisplayName string `db:"owner_display_name"`
		}
		if err := rows.StructScan(&row); err != nil {
			return nil, 0, err
		}
		row.Character.Owner = &domain.CharacterOwner{ID: row.OwnerUserID, DisplayName: row.OwnerDisplayName}
		characters = append(characters, row.Character)
	}

	return characters, total, rows.Err()
}
