package service

import (
	"time"

	"commentboard/internal/model"
)

// NewCommentResponse converts a comment to its API shape, evaluating the
// permission windows at the given instant. Children starts empty so the
// field always serializes as an array.
func NewCommentResponse(c *model.Comment, now time.Time) *model.CommentResponse {
	return &model.CommentResponse{
		ID:            c.ID,
		Content:       c.Content,
		AuthorID:      c.AuthorID,
		Author:        c.Author,
		ParentID:      c.ParentID,
		IsDeleted:     c.IsDeleted,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
		CanEdit:       c.CanEditAt(now),
		CanDelete:     c.CanDeleteAt(now),
		CanUndoDelete: c.CanUndoDeleteAt(now),
		Children:      []*model.CommentResponse{},
	}
}

// BuildCommentTree assembles the flat adjacency list into a forest of root
// comments. Two passes over the input: the first indexes every comment by
// id, the second attaches each comment to its parent's children.
//
// Input order (ascending created_at from the repository) is preserved
// within every children slice. A comment whose parent is not present in
// the input is promoted to a root rather than dropped, so content survives
// if its parent row ever disappears. Soft-deleted comments are included;
// filtering is the caller's concern.
func BuildCommentTree(comments []model.Comment, now time.Time) []*model.CommentResponse {
	nodes := make(map[string]*model.CommentResponse, len(comments))
	for i := range comments {
		nodes[comments[i].ID] = NewCommentResponse(&comments[i], now)
	}

	roots := []*model.CommentResponse{}
	for i := range comments {
		c := &comments[i]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Children = append(parent.Children, nodes[c.ID])
				continue
			}
		}
		roots = append(roots, nodes[c.ID])
	}

	return roots
}
