package model

import (
	"errors"
	"time"
)

// Grace windows for comment state changes. Edit and delete are separate
// policies that currently share the same duration; keep them named so they
// can diverge without touching call sites.
const (
	GraceWindow      = 15 * time.Minute
	EditWindow       = GraceWindow
	DeleteWindow     = GraceWindow
	UndoDeleteWindow = GraceWindow
)

// Comment represents a single comment row. Threading is a plain adjacency
// list: ParentID is nil for root comments. Deletion is always soft.
type Comment struct {
	ID        string     `db:"id" json:"id"`
	Content   string     `db:"content" json:"content"`
	AuthorID  string     `db:"author_id" json:"authorId"`
	ParentID  *string    `db:"parent_id" json:"parentId,omitempty"`
	IsDeleted bool       `db:"is_deleted" json:"isDeleted"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`

	Author *UserSummary `json:"author,omitempty"` // Joined field
}

// CanEditAt reports whether the comment may still be edited at the given
// instant. The deadline is anchored to the original creation time and is
// inclusive: at exactly createdAt+15m editing is still allowed.
func (c *Comment) CanEditAt(now time.Time) bool {
	return !now.After(c.CreatedAt.Add(EditWindow))
}

// CanDeleteAt reports whether the comment may still be soft-deleted at the
// given instant. Same anchor and inclusivity as CanEditAt.
func (c *Comment) CanDeleteAt(now time.Time) bool {
	return !now.After(c.CreatedAt.Add(DeleteWindow))
}

// CanUndoDeleteAt reports whether a soft-deleted comment may still be
// restored. Anchored to the deletion time, not creation.
func (c *Comment) CanUndoDeleteAt(now time.Time) bool {
	if !c.IsDeleted || c.DeletedAt == nil {
		return false
	}
	return !now.After(c.DeletedAt.Add(UndoDeleteWindow))
}

// CreateCommentRequest is the request body for creating a comment.
type CreateCommentRequest struct {
	Content  string  `json:"content" validate:"required,min=1,max=1000"`
	ParentID *string `json:"parentId,omitempty" validate:"omitempty,uuid"`
}

// UpdateCommentRequest is the request body for editing a comment.
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// CommentResponse is the API shape of a comment, with permission flags
// computed fresh at read time and replies nested under Children.
type CommentResponse struct {
	ID            string             `json:"id"`
	Content       string             `json:"content"`
	AuthorID      string             `json:"authorId"`
	Author        *UserSummary       `json:"author"`
	ParentID      *string            `json:"parentId,omitempty"`
	IsDeleted     bool               `json:"isDeleted"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	CanEdit       bool               `json:"canEdit"`
	CanDelete     bool               `json:"canDelete"`
	CanUndoDelete bool               `json:"canUndoDelete"`
	Children      []*CommentResponse `json:"children"`
}

// Comment constraints
const (
	MaxCommentLength = 1000
)

// Comment errors
var (
	ErrCommentNotFound     = errors.New("comment not found")
	ErrParentNotFound      = errors.New("parent comment not found")
	ErrNotCommentOwner     = errors.New("not the owner of this comment")
	ErrContentRequired     = errors.New("comment content is required")
	ErrContentTooLong      = errors.New("comment content too long")
	ErrEditWindowExpired   = errors.New("edit window expired")
	ErrDeleteWindowExpired = errors.New("delete window expired")
	ErrUndoWindowExpired   = errors.New("undo-delete window expired")
	ErrCommentNotDeleted   = errors.New("comment is not deleted")
)
