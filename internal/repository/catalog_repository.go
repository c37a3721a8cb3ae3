package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"hero-forge/internal/domain"
)

type CatalogRepository interface {
	GetClassByID(ctx context.Context, id int64) (*domain.CharacterClass, error)
	ListClasses(ctx context.Context) ([]domain.CharacterClass, error)
	ListSlots(ctx context.Context) ([]domain.ItemSlot, error)
	ListTypes(ctx context.Context) ([]domain.ItemType, error)
	ListItems(ctx context.Context, filter domain.ItemFilter, params domain.PaginationParams) ([]domain.Item, int64, error)
}

type catalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetClassByID(ctx context.Context, id int64) (*domain.CharacterClass, error) {
	var class domain.CharacterClass
	query := `SELECT * FROM character_classes WHERE id = $1`

	err := r.db.GetContext(ctx, &class, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *catalogRepository) ListClasses(ctx context.Context) ([]domain.CharacterClass, error) {
	var classes []domain.CharacterClass
	query := `SELECT * FROM character_classes WHERE is_active = TRUE ORDER BY name ASC`

	err := r.db.SelectContext(ctx, &classes, query)
	return classes, err
}

func (r *catalogRepository) ListSlots(ctx context.Context) ([]domain.ItemSlot, error) {
	var slots []domain.ItemSlot
	err := r.db.SelectContext(ctx, &slots, `SELECT * FROM item_slots ORDER BY name ASC`)
	return slots, err
}

func (r *catalogRepository) ListTypes(ctx context.Context) ([]domain.ItemType, error) {
	var types []domain.ItemType
	err := r.db.SelectContext(ctx, &types, `SELECT * FROM item_types ORDER BY name ASC`)
	return types, err
}

func (r *catalogRepository) ListItems(ctx context.Context, filter domain.ItemFilter, params domain.PaginationParams) ([]domain.Item, int64, error) {
	where := `1 = 1`
	args := []interface{}{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if filter.SlotID != nil {
		args = append(args, *filter.SlotID)
		where += fmt.Sprintf(" AND slot_id = $%d", len(args))
	}
	if filter.TypeID != nil {
		args = append(args, *filter.TypeID)
		where += fmt.Sprintf(" AND type_id = $%d", len(args))
	}
	if filter.ClassID != nil {
		args = append(args, *filter.ClassID)
		where += fmt.Sprintf(" AND (class_id IS NULL OR class_id = $%d)", len(args))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		where += fmt.Sprintf(" AND is_active = $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM items WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.PageSize, params.Offset())
	query := fmt.Sprintf(`
		SELECT * FROM items
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`, where, filter.Sort.OrderBy(), len(args)-1, len(args))

	var items []domain.Item
	err := r.db.SelectContext(ctx, &items, query, args...)
	return items, total, err
}
