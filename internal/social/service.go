package social

import (
	"context"

	"github.com/Glaser1/Yatube/internal/db"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) GetProfile(ctx context.Context, username string) (Profile, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, username, full_name
		FROM users WHERE username=$1
	`, username)
	var p Profile
	if err := row.Scan(&p.ID, &p.Username, &p.FullName); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Follow is idempotent: the edge has a composite primary key and re-follows
// are swallowed by the conflict clause.
func (s *Service) Follow(ctx context.Context, followerID, authorID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO follows (follower_id, author_id)
		VALUES ($1,$2)
		ON CONFLICT DO NOTHING
	`, followerID, authorID)
	return err
}

// Unfollow reports whether an edge was actually deleted.
func (s *Service) Unfollow(ctx context.Context, followerID, authorID string) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM follows
		WHERE follower_id=$1 AND author_id=$2
	`, followerID, authorID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Service) IsFollowing(ctx context.Context, followerID, authorID string) (bool, error) {
	var ok bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM follows
			WHERE follower_id=$1 AND author_id=$2
		)
	`, followerID, authorID).Scan(&ok)
	return ok, err
}
