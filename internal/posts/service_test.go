package posts

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

func postRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "author_id", "username", "group_id", "title", "slug",
		"text", "image_path", "created_at",
	})
}

func TestCreatePost(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), "hello", "").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	svc := NewService(mock)
	post, err := svc.CreatePost(context.Background(), Post{AuthorID: "user-1", Text: "hello"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.ID == "" || post.CreatedAt.IsZero() {
		t.Fatalf("expected populated post")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListAllNewestFirst(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now()
	groupID := "group-1"
	mock.ExpectQuery(`ORDER BY p\.created_at DESC`).
		WithArgs(10, 0).
		WillReturnRows(postRows().
			AddRow("post-2", "user-1", "leo", nil, "", "", "newer", "", now).
			AddRow("post-1", "user-1", "leo", &groupID, "Cats", "cats", "older", "", now.Add(-time.Hour)))

	svc := NewService(mock)
	list, err := svc.ListAll(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(list))
	}
	if list[0].GroupID != nil {
		t.Fatalf("expected nil group on first post")
	}
	if list[1].GroupID == nil || *list[1].GroupID != "group-1" || list[1].GroupSlug != "cats" {
		t.Fatalf("expected group on second post, got %+v", list[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCountAndScopedFeeds(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM posts$`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(13))

	mock.ExpectQuery(`WHERE p\.group_id=\$1[\s\S]*ORDER BY p\.created_at DESC`).
		WithArgs("group-1", 10, 0).
		WillReturnRows(postRows())

	mock.ExpectQuery(`WHERE p\.author_id=\$1[\s\S]*ORDER BY p\.created_at DESC`).
		WithArgs("user-1", 10, 0).
		WillReturnRows(postRows())

	mock.ExpectQuery(`WHERE p\.author_id IN \(SELECT author_id FROM follows WHERE follower_id=\$1\)[\s\S]*ORDER BY p\.created_at DESC`).
		WithArgs("user-1", 10, 0).
		WillReturnRows(postRows())

	svc := NewService(mock)

	total, err := svc.CountAll(context.Background())
	if err != nil || total != 13 {
		t.Fatalf("count all: %v (%d)", err, total)
	}
	if _, err := svc.ListByGroup(context.Background(), "group-1", 10, 0); err != nil {
		t.Fatalf("list by group: %v", err)
	}
	if _, err := svc.ListByAuthor(context.Background(), "user-1", 10, 0); err != nil {
		t.Fatalf("list by author: %v", err)
	}
	if _, err := svc.ListByFollowed(context.Background(), "user-1", 10, 0); err != nil {
		t.Fatalf("list by followed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdatePost(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	groupID := "group-1"
	mock.ExpectExec(`UPDATE posts`).
		WithArgs("post-1", "edited", pgxmock.AnyArg(), "posts/pic.png").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	svc := NewService(mock)
	err = svc.UpdatePost(context.Background(), Post{
		ID: "post-1", Text: "edited", GroupID: &groupID, ImagePath: "posts/pic.png",
	})
	if err != nil {
		t.Fatalf("update post: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCommentsNewestFirst(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO comments`).
		WithArgs(pgxmock.AnyArg(), "post-1", "user-1", "nice").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	mock.ExpectQuery(`FROM comments c[\s\S]*ORDER BY c\.created_at DESC`).
		WithArgs("post-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "post_id", "author_id", "username", "text", "created_at"}).
			AddRow("comment-1", "post-1", "user-1", "leo", "nice", time.Now()))

	svc := NewService(mock)
	comment, err := svc.CreateComment(context.Background(), Comment{PostID: "post-1", AuthorID: "user-1", Text: "nice"})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if comment.ID == "" {
		t.Fatalf("expected comment id")
	}

	comments, err := svc.ListComments(context.Background(), "post-1")
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 1 || comments[0].AuthorName != "leo" {
		t.Fatalf("unexpected comments: %+v", comments)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGroupLookups(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	groupRow := func() *pgxmock.Rows {
		return pgxmock.NewRows([]string{"id", "title", "slug", "description", "created_at"}).
			AddRow("group-1", "Cats", "cats", "All about cats", time.Now())
	}

	mock.ExpectQuery(`FROM groups WHERE slug=\$1`).
		WithArgs("cats").
		WillReturnRows(groupRow())
	mock.ExpectQuery(`FROM groups WHERE id=\$1`).
		WithArgs("group-1").
		WillReturnRows(groupRow())
	mock.ExpectQuery(`FROM groups[\s\S]*ORDER BY title`).
		WillReturnRows(groupRow())

	svc := NewService(mock)
	g, err := svc.GetGroup(context.Background(), "cats")
	if err != nil || g.ID != "group-1" {
		t.Fatalf("get group: %v (%+v)", err, g)
	}
	if _, err := svc.GetGroupByID(context.Background(), "group-1"); err != nil {
		t.Fatalf("get group by id: %v", err)
	}
	groups, err := svc.ListGroups(context.Background())
	if err != nil || len(groups) != 1 {
		t.Fatalf("list groups: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
