package service

import (
	"testing"
	"time"

	"commentboard/internal/model"
)

func strptr(s string) *string { return &s }

func testComment(id string, parentID *string, createdAt time.Time) model.Comment {
	return model.Comment{
		ID:        id,
		Content:   "content of " + id,
		AuthorID:  "author-1",
		ParentID:  parentID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		Author:    &model.UserSummary{ID: "author-1", Username: "alice"},
	}
}

// countNodes walks a forest and returns the total number of nodes.
func countNodes(roots []*model.CommentResponse) int {
	n := 0
	for _, r := range roots {
		n += 1 + countNodes(r.Children)
	}
	return n
}

func TestBuildCommentTree_NestsRepliesUnderParents(t *testing.T) {
	base := time.Now().Add(-time.Hour)
	comments := []model.Comment{
		testComment("root-1", nil, base),
		testComment("child-1", strptr("root-1"), base.Add(time.Minute)),
		testComment("child-2", strptr("root-1"), base.Add(2*time.Minute)),
		testComment("grandchild-1", strptr("child-1"), base.Add(3*time.Minute)),
		testComment("root-2", nil, base.Add(4*time.Minute)),
	}

	roots := BuildCommentTree(comments, time.Now())

	if len(roots) != 2 {
		t.Fatalf("got %d roots, want 2", len(roots))
	}
	if roots[0].ID != "root-1" || roots[1].ID != "root-2" {
		t.Errorf("roots = [%s, %s], want [root-1, root-2]", roots[0].ID, roots[1].ID)
	}

	r1 := roots[0]
	if len(r1.Children) != 2 {
		t.Fatalf("root-1 has %d children, want 2", len(r1.Children))
	}
	if r1.Children[0].ID != "child-1" || r1.Children[1].ID != "child-2" {
		t.Errorf("children order = [%s, %s], want creation order [child-1, child-2]",
			r1.Children[0].ID, r1.Children[1].ID)
	}
	if len(r1.Children[0].Children) != 1 || r1.Children[0].Children[0].ID != "grandchild-1" {
		t.Error("grandchild-1 should be nested under child-1")
	}
}

func TestBuildCommentTree_NoDropsNoDuplicates(t *testing.T) {
	base := time.Now().Add(-time.Hour)
	comments := []model.Comment{
		testComment("a", nil, base),
		testComment("b", strptr("a"), base.Add(1*time.Minute)),
		testComment("c", strptr("b"), base.Add(2*time.Minute)),
		testComment("d", strptr("missing-parent"), base.Add(3*time.Minute)),
		testComment("e", nil, base.Add(4*time.Minute)),
	}

	roots := BuildCommentTree(comments, time.Now())

	if got := countNodes(roots); got != len(comments) {
		t.Errorf("forest contains %d nodes, want %d (nothing dropped or duplicated)", got, len(comments))
	}
}

func TestBuildCommentTree_OrphanPromotedToRoot(t *testing.T) {
	base := time.Now().Add(-time.Hour)
	comments := []model.Comment{
		testComment("root-1", nil, base),
		testComment("orphan", strptr("gone-parent"), base.Add(time.Minute)),
	}

	roots := BuildCommentTree(comments, time.Now())

	if len(roots) != 2 {
		t.Fatalf("got %d roots, want 2 (orphan promoted, not dropped)", len(roots))
	}
	if roots[1].ID != "orphan" {
		t.Errorf("second root = %s, want the orphan", roots[1].ID)
	}
	// The orphan keeps its dangling parentId; only tree placement changes.
	if roots[1].ParentID == nil || *roots[1].ParentID != "gone-parent" {
		t.Error("promotion must not rewrite the stored parentId")
	}
}

func TestBuildCommentTree_IncludesDeletedComments(t *testing.T) {
	base := time.Now().Add(-time.Hour)
	deletedAt := base.Add(time.Minute)

	deleted := testComment("deleted-root", nil, base)
	deleted.IsDeleted = true
	deleted.DeletedAt = &deletedAt

	comments := []model.Comment{
		deleted,
		testComment("reply", strptr("deleted-root"), base.Add(2*time.Minute)),
	}

	roots := BuildCommentTree(comments, time.Now())

	if len(roots) != 1 {
		t.Fatalf("got %d roots, want 1", len(roots))
	}
	if !roots[0].IsDeleted {
		t.Error("deleted comments must appear in the tree; filtering is the caller's job")
	}
	if len(roots[0].Children) != 1 {
		t.Error("replies to a deleted comment stay attached to it")
	}
}

func TestBuildCommentTree_EmptyInput(t *testing.T) {
	roots := BuildCommentTree(nil, time.Now())
	if roots == nil {
		t.Error("want empty slice, not nil, so the response serializes as []")
	}
	if len(roots) != 0 {
		t.Errorf("got %d roots, want 0", len(roots))
	}
}

func TestNewCommentResponse_PermissionFlags(t *testing.T) {
	now := time.Now()

	fresh := testComment("fresh", nil, now.Add(-time.Minute))
	resp := NewCommentResponse(&fresh, now)
	if !resp.CanEdit || !resp.CanDelete {
		t.Error("fresh comment should be editable and deletable")
	}
	if resp.CanUndoDelete {
		t.Error("active comment can never be undo-deleted")
	}

	old := testComment("old", nil, now.Add(-time.Hour))
	resp = NewCommentResponse(&old, now)
	if resp.CanEdit || resp.CanDelete {
		t.Error("hour-old comment is outside both windows")
	}

	deletedAt := now.Add(-5 * time.Minute)
	deleted := testComment("deleted", nil, now.Add(-time.Hour))
	deleted.IsDeleted = true
	deleted.DeletedAt = &deletedAt
	resp = NewCommentResponse(&deleted, now)
	if !resp.CanUndoDelete {
		t.Error("recently deleted comment should be restorable")
	}
}
