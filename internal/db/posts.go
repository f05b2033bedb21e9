package db

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/pgxscan"
	"gitlab.com/ranfdev/updoot/internal/models"
)

var returningPost = "RETURNING " + strings.Join(postColumns, ", ")

func (sdb *SharedDB) CreatePost(ctx context.Context, creatorID int, in models.PostInput) (*models.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	sql, args, _ := psql.
		Insert("posts").
		Columns("creator_id", "title", "text").
		Values(creatorID, strings.TrimSpace(in.Title), in.Text).
		Suffix(returningPost).
		ToSql()

	var post models.Post
	err := pgxscan.Get(ctx, sdb.db, &post, sql, args...)
	if err != nil {
		return nil, classify("create post", err)
	}
	return &post, nil
}
func (sdb *SharedDB) GetPost(ctx context.Context, id int) (*models.Post, error) {
	sql, args, _ := psql.
		Select(postColumns...).
		From("posts").
		Where(sq.Eq{"posts.id": id}).
		ToSql()

	var post models.Post
	err := pgxscan.Get(ctx, sdb.db, &post, sql, args...)
	if isNoRows(err) {
		return nil, models.NotFound("post")
	}
	if err != nil {
		return nil, classify("get post", err)
	}
	return &post, nil
}

// UpdatePost edits title and text. Only the creator may do it; points are
// never touched here.
func (sdb *SharedDB) UpdatePost(ctx context.Context, userID, id int, in models.PostInput) (*models.Post, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	sql, args, _ := psql.
		Update("posts").
		Set("title", strings.TrimSpace(in.Title)).
		Set("text", in.Text).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "creator_id": userID}).
		Suffix(returningPost).
		ToSql()

	var post models.Post
	err := pgxscan.Get(ctx, sdb.db, &post, sql, args...)
	if isNoRows(err) {
		return nil, sdb.missingOrDenied(ctx, id)
	}
	if err != nil {
		return nil, classify("update post", err)
	}
	return &post, nil
}

// DeletePost removes a post owned by userID. Its updoots go with it.
func (sdb *SharedDB) DeletePost(ctx context.Context, userID, id int) error {
	sql, args, _ := psql.
		Delete("posts").
		Where(sq.Eq{"id": id, "creator_id": userID}).
		ToSql()
	tag, err := sdb.db.Exec(ctx, sql, args...)
	if err != nil {
		return classify("delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return sdb.missingOrDenied(ctx, id)
	}
	return nil
}
func (sdb *SharedDB) missingOrDenied(ctx context.Context, id int) error {
	var exists bool
	err := sdb.db.QueryRow(ctx, "SELECT exists(SELECT 1 FROM posts WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return classify("check post", err)
	}
	if exists {
		return models.ErrPermDenied
	}
	return models.NotFound("post")
}
