package comment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(func() { mock.Close() })
	return mock
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(nil, nil)

	if _, err := svc.Create(context.Background(), "p1", "u1", CreateRequest{Text: "   "}); err == nil {
		t.Fatalf("expected error for empty text")
	}
	long := strings.Repeat("a", MaxTextLength+1)
	if _, err := svc.Create(context.Background(), "p1", "u1", CreateRequest{Text: long}); err == nil {
		t.Fatalf("expected error for long text")
	}
}

func TestCreateTopLevel(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO comments`).
		WithArgs(pgxmock.AnyArg(), "p1", "u1", (*string)(nil), "Ich habe ihn gesehen!").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	svc := NewService(mock, nil)
	c, err := svc.Create(context.Background(), "p1", "u1", CreateRequest{Text: "Ich habe ihn gesehen!"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ParentID != nil || c.PostID != "p1" {
		t.Fatalf("unexpected comment: %+v", c)
	}
}

func TestCreateReplyToReplyAttachesToRoot(t *testing.T) {
	mock := newMock(t)

	root := "c-root"
	mock.ExpectQuery(`SELECT parent_id FROM comments`).
		WithArgs("c-reply").
		WillReturnRows(pgxmock.NewRows([]string{"parent_id"}).AddRow(&root))
	mock.ExpectQuery(`INSERT INTO comments`).
		WithArgs(pgxmock.AnyArg(), "p1", "u1", &root, "Wo genau?").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	svc := NewService(mock, nil)
	reply := "c-reply"
	c, err := svc.Create(context.Background(), "p1", "u1", CreateRequest{Text: "Wo genau?", ParentID: &reply})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ParentID == nil || *c.ParentID != root {
		t.Fatalf("reply not reattached to root: %+v", c.ParentID)
	}
}

func TestListByPostNestsReplies(t *testing.T) {
	mock := newMock(t)

	root := "c1"
	now := time.Now()
	mock.ExpectQuery(`SELECT id, post_id, user_id, parent_id, text, created_at`).
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "post_id", "user_id", "parent_id", "text", "created_at"}).
			AddRow("c1", "p1", "u1", nil, "Gesehen!", now).
			AddRow("c2", "p1", "u2", &root, "Wo?", now.Add(time.Minute)))
	mock.ExpectQuery(`SELECT r.comment_id, r.emoji, COUNT`).
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows([]string{"comment_id", "emoji", "count"}).
			AddRow("c1", "👍", 3))

	svc := NewService(mock, nil)
	items, err := svc.ListByPost(context.Background(), "p1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 root, got %d", len(items))
	}
	if len(items[0].Replies) != 1 || items[0].Replies[0].ID != "c2" {
		t.Fatalf("reply not nested: %+v", items[0])
	}
	if items[0].Reactions["👍"] != 3 {
		t.Fatalf("reactions missing: %v", items[0].Reactions)
	}
}

func TestToggleReaction(t *testing.T) {
	mock := newMock(t)

	// first toggle inserts
	mock.ExpectExec(`DELETE FROM comment_reactions`).
		WithArgs("c1", "u1", "👍").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO comment_reactions`).
		WithArgs("c1", "u1", "👍").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	// second toggle removes
	mock.ExpectExec(`DELETE FROM comment_reactions`).
		WithArgs("c1", "u1", "👍").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	svc := NewService(mock, nil)
	active, err := svc.ToggleReaction(context.Background(), "c1", "u1", "👍")
	if err != nil || !active {
		t.Fatalf("first toggle: active=%v err=%v", active, err)
	}
	active, err = svc.ToggleReaction(context.Background(), "c1", "u1", "👍")
	if err != nil || active {
		t.Fatalf("second toggle: active=%v err=%v", active, err)
	}
}

func TestDeleteOnlyByAuthor(t *testing.T) {
	mock := newMock(t)

	mock.ExpectExec(`DELETE FROM comments`).
		WithArgs("c1", "u2").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	svc := NewService(mock, nil)
	if err := svc.Delete(context.Background(), "c1", "u2"); err == nil {
		t.Fatalf("expected error when deleting someone else's comment")
	}
}
