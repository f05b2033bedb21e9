package db

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/pgxscan"
	"gitlab.com/ranfdev/updoot/internal/models"
)

var postColumns = []string{
	"posts.id",
	"posts.creator_id",
	"posts.title",
	"posts.text",
	"posts.points",
	"posts.created_at",
	"posts.updated_at",
}

// ListPosts returns the page of posts created before cursor, newest first.
// One extra row is fetched to know whether another page follows.
func (sdb *SharedDB) ListPosts(ctx context.Context, limit int, cursor string) (*models.PaginatedPosts, error) {
	realLimit, err := models.ClampLimit(limit)
	if err != nil {
		return nil, err
	}
	c, err := models.ParseCursor(cursor)
	if err != nil {
		return nil, err
	}

	sql, args, _ := selectFeed(realLimit+1, c).ToSql()
	posts := []models.Post{}
	err = pgxscan.Select(ctx, sdb.db, &posts, sql, args...)
	if err != nil {
		return nil, classify("list posts", err)
	}
	return models.NewPage(posts, realLimit), nil
}
func selectFeed(fetch int, c *models.Cursor) sq.SelectBuilder {
	q := psql.
		Select(postColumns...).
		From("posts").
		OrderBy("posts.created_at DESC", "posts.id DESC").
		Limit(uint64(fetch))

	switch {
	case c == nil:
	case c.PostID == 0:
		q = q.Where(sq.Lt{"posts.created_at": c.CreatedAt})
	default:
		q = q.Where(sq.Expr("(posts.created_at, posts.id) < (?, ?)", c.CreatedAt, c.PostID))
	}
	return q
}
