package db

import (
	"context"

	"gitlab.com/ranfdev/updoot/internal/models"
)

func (sdb *SharedDB) CreateUser(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	sql, args, _ := psql.
		Insert("users").
		Columns("username").
		Values(user.Username).
		Suffix("RETURNING id, created_at").
		ToSql()

	err := sdb.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt)
	return classify("create user", err)
}
