package posts

import (
	"context"

	"github.com/Glaser1/Yatube/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

const postColumns = `
	p.id, p.author_id, u.username, p.group_id, COALESCE(g.title,''), COALESCE(g.slug,''),
	p.text, p.image_path, p.created_at`

const postJoins = `
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id`

func (s *Service) CreatePost(ctx context.Context, input Post) (Post, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO posts (id, author_id, group_id, text, image_path)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, input.ID, input.AuthorID, input.GroupID, input.Text, input.ImagePath)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Post{}, err
	}
	return input, nil
}

func (s *Service) GetPost(ctx context.Context, id string) (Post, error) {
	row := s.db.QueryRow(ctx, `
		SELECT`+postColumns+postJoins+`
		WHERE p.id=$1
	`, id)
	return scanPost(row)
}

// UpdatePost mutates text, group and image of an existing post in place.
func (s *Service) UpdatePost(ctx context.Context, post Post) error {
	_, err := s.db.Exec(ctx, `
		UPDATE posts
		SET text=$2, group_id=$3, image_path=$4
		WHERE id=$1
	`, post.ID, post.Text, post.GroupID, post.ImagePath)
	return err
}

func (s *Service) CountAll(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM posts`).Scan(&n)
	return n, err
}

func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]Post, error) {
	rows, err := s.db.Query(ctx, `
		SELECT`+postColumns+postJoins+`
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

func (s *Service) CountByGroup(ctx context.Context, groupID string) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM posts WHERE group_id=$1`, groupID).Scan(&n)
	return n, err
}

func (s *Service) ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]Post, error) {
	rows, err := s.db.Query(ctx, `
		SELECT`+postColumns+postJoins+`
		WHERE p.group_id=$1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, groupID, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

func (s *Service) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM posts WHERE author_id=$1`, authorID).Scan(&n)
	return n, err
}

func (s *Service) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]Post, error) {
	rows, err := s.db.Query(ctx, `
		SELECT`+postColumns+postJoins+`
		WHERE p.author_id=$1
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, authorID, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

func (s *Service) CountByFollowed(ctx context.Context, followerID string) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `
		SELECT count(*) FROM posts
		WHERE author_id IN (SELECT author_id FROM follows WHERE follower_id=$1)
	`, followerID).Scan(&n)
	return n, err
}

func (s *Service) ListByFollowed(ctx context.Context, followerID string, limit, offset int) ([]Post, error) {
	rows, err := s.db.Query(ctx, `
		SELECT`+postColumns+postJoins+`
		WHERE p.author_id IN (SELECT author_id FROM follows WHERE follower_id=$1)
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, followerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

func (s *Service) GetGroup(ctx context.Context, slug string) (Group, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, title, slug, description, created_at
		FROM groups WHERE slug=$1
	`, slug)
	var g Group
	if err := row.Scan(&g.ID, &g.Title, &g.Slug, &g.Description, &g.CreatedAt); err != nil {
		return Group{}, err
	}
	return g, nil
}

func (s *Service) GetGroupByID(ctx context.Context, id string) (Group, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, title, slug, description, created_at
		FROM groups WHERE id=$1
	`, id)
	var g Group
	if err := row.Scan(&g.ID, &g.Title, &g.Slug, &g.Description, &g.CreatedAt); err != nil {
		return Group{}, err
	}
	return g, nil
}

func (s *Service) ListGroups(ctx context.Context) ([]Group, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, slug, description, created_at
		FROM groups
		ORDER BY title
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Title, &g.Slug, &g.Description, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (s *Service) CreateComment(ctx context.Context, input Comment) (Comment, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO comments (id, post_id, author_id, text)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, input.ID, input.PostID, input.AuthorID, input.Text)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Comment{}, err
	}
	return input, nil
}

func (s *Service) ListComments(ctx context.Context, postID string) ([]Comment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT c.id, c.post_id, c.author_id, u.username, c.text, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id=$1
		ORDER BY c.created_at DESC
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var cm Comment
		if err := rows.Scan(&cm.ID, &cm.PostID, &cm.AuthorID, &cm.AuthorName, &cm.Text, &cm.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, cm)
	}
	return comments, rows.Err()
}

func scanPost(row pgx.Row) (Post, error) {
	var p Post
	if err := row.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.GroupID, &p.GroupTitle, &p.GroupSlug,
		&p.Text, &p.ImagePath, &p.CreatedAt); err != nil {
		return Post{}, err
	}
	return p, nil
}

func scanPosts(rows pgx.Rows) ([]Post, error) {
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
