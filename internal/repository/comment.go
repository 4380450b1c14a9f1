package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"commentboard/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// commentRow scans a comment joined with its author.
type commentRow struct {
	ID             string     `db:"id"`
	Content        string     `db:"content"`
	AuthorID       string     `db:"author_id"`
	ParentID       *string    `db:"parent_id"`
	IsDeleted      bool       `db:"is_deleted"`
	DeletedAt      *time.Time `db:"deleted_at"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	AuthorIDJoined string     `db:"author.id"`
	AuthorUsername string     `db:"author.username"`
}

func (row commentRow) toComment() model.Comment {
	return model.Comment{
		ID:        row.ID,
		Content:   row.Content,
		AuthorID:  row.AuthorID,
		ParentID:  row.ParentID,
		IsDeleted: row.IsDeleted,
		DeletedAt: row.DeletedAt,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		Author: &model.UserSummary{
			ID:       row.AuthorIDJoined,
			Username: row.AuthorUsername,
		},
	}
}

const commentSelectColumns = `
	c.id, c.content, c.author_id, c.parent_id, c.is_deleted, c.deleted_at, c.created_at, c.updated_at,
	u.id as "author.id", u.username as "author.username"
`

// Create inserts a new comment. The id is generated app-side; timestamps
// come back from the database.
func (r *commentRepository) Create(ctx context.Context, c *model.Comment) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	query := `
		INSERT INTO comments (id, content, author_id, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING is_deleted, created_at, updated_at
	`
	row := r.db.QueryRowxContext(ctx, query, c.ID, c.Content, c.AuthorID, c.ParentID)
	if err := row.Scan(&c.IsDeleted, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// GetByID retrieves a single comment with its author.
func (r *commentRepository) GetByID(ctx context.Context, commentID string) (*model.Comment, error) {
	query := `
		SELECT ` + commentSelectColumns + `
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1
	`
	var row commentRow
	err := r.db.GetContext(ctx, &row, query, commentID)
	if err == sql.ErrNoRows {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	comment := row.toComment()
	return &comment, nil
}

// GetAll returns every comment with authors joined, oldest first. The full
// scan is deliberate: tree assembly happens in memory and needs the whole
// table.
func (r *commentRepository) GetAll(ctx context.Context) ([]model.Comment, error) {
	query := `
		SELECT ` + commentSelectColumns + `
		FROM comments c
		JOIN users u ON u.id = c.author_id
		ORDER BY c.created_at ASC, c.id ASC
	`
	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("get all comments: %w", err)
	}

	comments := make([]model.Comment, len(rows))
	for i, row := range rows {
		comments[i] = row.toComment()
	}
	return comments, nil
}

// GetChildren returns the direct replies of a comment, oldest first.
func (r *commentRepository) GetChildren(ctx context.Context, parentID string) ([]model.Comment, error) {
	query := `
		SELECT ` + commentSelectColumns + `
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.parent_id = $1
		ORDER BY c.created_at ASC, c.id ASC
	`
	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, parentID); err != nil {
		return nil, fmt.Errorf("get comment children: %w", err)
	}

	comments := make([]model.Comment, len(rows))
	for i, row := range rows {
		comments[i] = row.toComment()
	}
	return comments, nil
}

// UpdateContent overwrites the content and bumps updated_at. Ownership and
// window checks live in the service; this is a plain write.
func (r *commentRepository) UpdateContent(ctx context.Context, commentID, content string) (*model.Comment, error) {
	query := `
		UPDATE comments
		SET content = $1, updated_at = NOW()
		WHERE id = $2
	`
	res, err := r.db.ExecContext(ctx, query, content, commentID)
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, model.ErrCommentNotFound
	}
	return r.GetByID(ctx, commentID)
}

// MarkDeleted flags the comment as soft-deleted at the given instant.
func (r *commentRepository) MarkDeleted(ctx context.Context, commentID string, deletedAt time.Time) error {
	query := `
		UPDATE comments
		SET is_deleted = true, deleted_at = $1
		WHERE id = $2
	`
	res, err := r.db.ExecContext(ctx, query, deletedAt, commentID)
	if err != nil {
		return fmt.Errorf("mark comment deleted: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

// ClearDeleted restores a soft-deleted comment and returns the fresh row.
func (r *commentRepository) ClearDeleted(ctx context.Context, commentID string) (*model.Comment, error) {
	query := `
		UPDATE comments
		SET is_deleted = false, deleted_at = NULL
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, commentID)
	if err != nil {
		return nil, fmt.Errorf("clear comment deleted: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, model.ErrCommentNotFound
	}
	return r.GetByID(ctx, commentID)
}
