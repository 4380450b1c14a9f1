package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"commentboard/internal/model"
	"commentboard/internal/repository"
)

// CommentService orchestrates the comment lifecycle: creation with reply
// notifications, tree reads, and the windowed edit/delete/undo-delete
// transitions.
type CommentService struct {
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	notifier    *NotificationService
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	notifier *NotificationService,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// Create posts a new comment, optionally as a reply. Replying to another
// user's comment notifies that user; the notification is written
// synchronously but best-effort, so a notifier failure never loses the
// comment itself.
func (s *CommentService) Create(ctx context.Context, userID string, req model.CreateCommentRequest) (*model.CommentResponse, error) {
	if err := validateContent(req.Content); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}

	// If this is a reply, the parent must exist. A soft-deleted parent is
	// still a valid reply target.
	var parent *model.Comment
	if req.ParentID != nil {
		parent, err = s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, model.ErrCommentNotFound) {
				return nil, model.ErrParentNotFound
			}
			return nil, err
		}
	}

	comment := &model.Comment{
		Content:  req.Content,
		AuthorID: userID,
		ParentID: req.ParentID,
		Author:   author.Summary(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	log.Printf("[CommentService] User %s created comment %s", userID, comment.ID)

	if parent != nil && parent.AuthorID != userID {
		err := s.notifier.CreateNotification(
			ctx,
			parent.AuthorID,
			userID,
			&parent.ID,
			model.NotificationTypeReply,
			fmt.Sprintf("%s replied to your comment", author.Username),
		)
		if err != nil {
			log.Printf("[CommentService] Failed to create reply notification: comment=%s err=%v", comment.ID, err)
		}
	}

	return NewCommentResponse(comment, time.Now()), nil
}

// List returns the full comment forest, deleted comments included.
func (s *CommentService) List(ctx context.Context) ([]*model.CommentResponse, error) {
	comments, err := s.commentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get comments: %w", err)
	}
	return BuildCommentTree(comments, time.Now()), nil
}

// Get returns a single comment with one level of direct replies.
func (s *CommentService) Get(ctx context.Context, commentID string) (*model.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	children, err := s.commentRepo.GetChildren(ctx, commentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	resp := NewCommentResponse(comment, now)
	for i := range children {
		resp.Children = append(resp.Children, NewCommentResponse(&children[i], now))
	}
	return resp, nil
}

// Update edits a comment's content. Only the author may edit, and only
// inside the edit window measured from creation.
func (s *CommentService) Update(ctx context.Context, commentID, userID string, req model.UpdateCommentRequest) (*model.CommentResponse, error) {
	if err := validateContent(req.Content); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID != userID {
		return nil, model.ErrNotCommentOwner
	}

	if !comment.CanEditAt(time.Now()) {
		return nil, model.ErrEditWindowExpired
	}

	updated, err := s.commentRepo.UpdateContent(ctx, commentID, req.Content)
	if err != nil {
		return nil, err
	}

	log.Printf("[CommentService] User %s updated comment %s", userID, commentID)
	return NewCommentResponse(updated, time.Now()), nil
}

// Delete soft-deletes a comment. Only the author may delete, and only
// inside the delete window measured from creation. The row is never
// removed, so replies keep their parent.
func (s *CommentService) Delete(ctx context.Context, commentID, userID string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != userID {
		return model.ErrNotCommentOwner
	}

	now := time.Now()
	if !comment.CanDeleteAt(now) {
		return model.ErrDeleteWindowExpired
	}

	if err := s.commentRepo.MarkDeleted(ctx, commentID, now); err != nil {
		return err
	}

	log.Printf("[CommentService] User %s deleted comment %s", userID, commentID)
	return nil
}

// UndoDelete restores a soft-deleted comment. Only the author may restore,
// and only inside the undo window measured from the deletion time. A
// comment can cycle delete/undo repeatedly as long as each transition
// lands inside its window.
func (s *CommentService) UndoDelete(ctx context.Context, commentID, userID string) (*model.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID != userID {
		return nil, model.ErrNotCommentOwner
	}

	if !comment.IsDeleted {
		return nil, model.ErrCommentNotDeleted
	}

	if !comment.CanUndoDeleteAt(time.Now()) {
		return nil, model.ErrUndoWindowExpired
	}

	restored, err := s.commentRepo.ClearDeleted(ctx, commentID)
	if err != nil {
		return nil, err
	}

	log.Printf("[CommentService] User %s restored comment %s", userID, commentID)
	return NewCommentResponse(restored, time.Now()), nil
}

func validateContent(content string) error {
	if len(content) == 0 {
		return model.ErrContentRequired
	}
	// Length limit is in characters, not bytes, so multibyte content is
	// measured the same way the request validation measures it.
	if utf8.RuneCountInString(content) > model.MaxCommentLength {
		return model.ErrContentTooLong
	}
	return nil
}
