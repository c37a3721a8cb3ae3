package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"hero-forge/internal/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	GetByAuthorAndCharacter(ctx context.Context, characterID, authorID int64) (*domain.Comment, error)
	ExistsByAuthorAndCharacter(ctx context.Context, characterID, authorID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	ListApprovedByCharacter(ctx context.Context, characterID int64) ([]domain.Comment, error)
	// ReviewTransition only updates while the comment is still Pending; see
	// CharacterRepository.ReviewTransition.
	ReviewTransition(ctx context.Context, id int64, to domain.CommentStatus, reviewerID int64, reason *string) (bool, error)
	ListPending(ctx context.Context, params domain.PaginationParams) ([]domain.Comment, int64, error)
	AverageRatingForCharacter(ctx context.Context, characterID int64) (float64, int64, error)
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (character_id, author_id, rating, text, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		comment.CharacterID, comment.AuthorID, comment.Rating, comment.Text, comment.Status,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment domain.Comment
	query := `SELECT * FROM comments WHERE id = $1`

	err := r.db.GetContext(ctx, &comment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) GetByAuthorAndCharacter(ctx context.Context, characterID, authorID int64) (*domain.Comment, error) {
	var comment domain.Comment
	query := `SELECT * FROM comments WHERE character_id = $1 AND author_id = $2`

	err := r.db.GetContext(ctx, &comment, query, characterID, authorID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ExistsByAuthorAndCharacter(ctx context.Context, characterID, authorID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM comments WHERE character_id = $1 AND author_id = $2)`

	err := r.db.GetContext(ctx, &exists, query, characterID, authorID)
	return exists, err
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM comments WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *commentRepository) ListApprovedByCharacter(ctx context.Context, characterID int64) ([]domain.Comment, error) {
	query := `
		SELECT
			c.*,
			u.id AS author_user_id, u.display_name AS author_display_name
		FROM comments c
		INNER JOIN users u ON c.author_id = u.id
		WHERE c.character_id = $1 AND c.status = $2
		ORDER BY c.created_at DESC`

	rows, err := r.db.QueryxContext(ctx, query, characterID, domain.CommentApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var row struct {
			domain.Comment
			AuthorUserID      int64  `db:"author_user_id"`
			AuthorDisplayName string `db:"author_display_name"`
		}
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		row.Comment.Author = &domain.CommentAuthor{ID: row.AuthorUserID, DisplayName: row.AuthorDisplayName}
		comments = append(comments, row.Comment)
	}

	return comments, rows.Err()
}

func (r *commentRepository) ReviewTransition(ctx context.Context, id int64, to domain.CommentStatus, reviewerID int64, reason *string) (bool, error) {
	query := `
		UPDATE comments SET
			status = $2, reviewed_by = $3, reviewed_at = $4, rejection_reason = $5,
			updated_at = NOW()
		WHERE id = $1 AND status = $6`

	res, err := r.db.ExecContext(ctx, query, id, to, reviewerID, time.Now(), reason, domain.CommentPending)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func (r *commentRepository) ListPending(ctx context.Context, params domain.PaginationParams) ([]domain.Comment, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM comments WHERE status = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, domain.CommentPending); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			c.*,
			u.id AS author_user_id, u.display_name AS author_display_name
		FROM comments c
		INNER JOIN users u ON c.author_id = u.id
		WHERE c.status = $1
		ORDER BY c.created_at ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryxContext(ctx, query, domain.CommentPending, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var row struct {
			domain.Comment
			AuthorUserID      int64  `db:"author_user_id"`
			AuthorDisplayName string `db:"author_display_name"`
		}
		if err := rows.StructScan(&row); err != nil {
			return nil, 0, err
		}
		row.Comment.Author = &domain.CommentAuthor{ID: row.AuthorUserID, DisplayName: row.AuthorDisplayName}
		comments = append(comments, row.Comment)
	}

	return comments, total, rows.Err()
}

func (r *commentRepository) AverageRatingForCharacter(ctx context.Context, characterID int64) (float64, int64, error) {
	var result struct {
		Average float64 `db:"average"`
		Count   int64   `db:"count"`
	}
	query := `
		SELECT COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count
		FROM comments
		WHERE character_id = $1 AND status = $2`

	err := r.db.GetContext(ctx, &result, query, characterID, domain.CommentApproved)
	return result.Average, result.Count, err
}
