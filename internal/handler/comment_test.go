package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"commentboard/internal/model"
	"commentboard/internal/service"
	"commentboard/internal/transport/http/middleware"
)

// stubCommentRepo holds a fixed set of comments for handler-level tests.
type stubCommentRepo struct {
	comments map[string]*model.Comment
}

func (s *stubCommentRepo) Create(ctx context.Context, c *model.Comment) error {
	c.ID = "created"
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	s.comments[c.ID] = c
	return nil
}

func (s *stubCommentRepo) GetByID(ctx context.Context, commentID string) (*model.Comment, error) {
	c, ok := s.comments[commentID]
	if !ok {
		return nil, model.ErrCommentNotFound
	}
	copied := *c
	return &copied, nil
}

func (s *stubCommentRepo) GetAll(ctx context.Context) ([]model.Comment, error) {
	var out []model.Comment
	for _, c := range s.comments {
		out = append(out, *c)
	}
	return out, nil
}

func (s *stubCommentRepo) GetChildren(ctx context.Context, parentID string) ([]model.Comment, error) {
	return nil, nil
}

func (s *stubCommentRepo) UpdateContent(ctx context.Context, commentID, content string) (*model.Comment, error) {
	c, ok := s.comments[commentID]
	if !ok {
		return nil, model.ErrCommentNotFound
	}
	c.Content = content
	copied := *c
	return &copied, nil
}

func (s *stubCommentRepo) MarkDeleted(ctx context.Context, commentID string, deletedAt time.Time) error {
	c, ok := s.comments[commentID]
	if !ok {
		return model.ErrCommentNotFound
	}
	c.IsDeleted = true
	c.DeletedAt = &deletedAt
	return nil
}

func (s *stubCommentRepo) ClearDeleted(ctx context.Context, commentID string) (*model.Comment, error) {
	c, ok := s.comments[commentID]
	if !ok {
		return nil, model.ErrCommentNotFound
	}
	c.IsDeleted = false
	c.DeletedAt = nil
	copied := *c
	return &copied, nil
}

type stubUserRepo struct{}

func (stubUserRepo) Create(ctx context.Context, user *model.User) error { return nil }
func (stubUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return &model.User{ID: id, Username: "alice"}, nil
}
func (stubUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, model.ErrUserNotFound
}
func (stubUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return false, nil
}
func (stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

type stubNotifRepo struct{}

func (stubNotifRepo) Create(ctx context.Context, notif *model.Notification) error { return nil }
func (stubNotifRepo) GetByUserID(ctx context.Context, userID string) ([]model.Notification, error) {
	return nil, nil
}
func (stubNotifRepo) MarkAsRead(ctx context.Context, notificationID, userID string) (*model.Notification, error) {
	return nil, model.ErrNotificationNotFound
}
func (stubNotifRepo) MarkAllAsRead(ctx context.Context, userID string) error { return nil }
func (stubNotifRepo) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

func newCommentHandlerForTest(commentRepo *stubCommentRepo) *CommentHandler {
	svc := service.NewCommentService(commentRepo, stubUserRepo{}, service.NewNotificationService(stubNotifRepo{}))
	return NewCommentHandler(svc)
}

// deleteRequest builds a DELETE /comments/{id} request with the route param
// and authenticated user wired into the context.
func deleteRequest(commentID, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/comments/"+commentID, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", commentID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestCommentHandler_Delete_ReturnsEmptyBody(t *testing.T) {
	repo := &stubCommentRepo{comments: map[string]*model.Comment{
		"c1": {ID: "c1", Content: "bye", AuthorID: "user-1", CreatedAt: time.Now(), UpdatedAt: time.Now()},
	}}
	h := newCommentHandlerForTest(repo)

	rec := httptest.NewRecorder()
	h.Delete(rec, deleteRequest("c1", "user-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("delete response body = %q, want empty", rec.Body.String())
	}
	if !repo.comments["c1"].IsDeleted {
		t.Error("comment should be soft-deleted")
	}
}

func TestCommentHandler_Delete_WindowExpired(t *testing.T) {
	repo := &stubCommentRepo{comments: map[string]*model.Comment{
		"c1": {ID: "c1", Content: "old", AuthorID: "user-1", CreatedAt: time.Now().Add(-16 * time.Minute)},
	}}
	h := newCommentHandlerForTest(repo)

	rec := httptest.NewRecorder()
	h.Delete(rec, deleteRequest("c1", "user-1"))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if !strings.Contains(rec.Body.String(), "15 minutes") {
		t.Errorf("body = %q, want the window message", rec.Body.String())
	}
}
