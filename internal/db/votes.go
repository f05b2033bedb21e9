package db

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/cenkalti/backoff/v5"
	"github.com/georgysavva/scany/pgxscan"
	"gitlab.com/ranfdev/updoot/internal/models"
)

type voteOutcome string

const (
	voteFirst voteOutcome = "first"
	voteFlip  voteOutcome = "flip"
	voteNoop  voteOutcome = "noop"
)

func newVoteBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Millisecond
	b.MaxInterval = 250 * time.Millisecond
	return b
}

// CastVote sets userID's vote on postID to dir, keeping posts.points equal
// to the sum of the post's updoots. Repeating the current vote is a
// successful no-op. Conflicts with concurrent votes on the same pair are
// retried up to the configured budget, then returned as ErrConflict.
func (sdb *SharedDB) CastVote(ctx context.Context, userID, postID int, dir models.VoteDirection) (bool, error) {
	value, err := dir.Value()
	if err != nil {
		return false, err
	}

	attempt := 0
	_, err = backoff.Retry(ctx, func() (voteOutcome, error) {
		attempt++
		var outcome voteOutcome
		err := execTx(ctx, sdb.db, func(ctx context.Context, tx DBTX) error {
			var err error
			outcome, err = castVote(ctx, tx, userID, postID, value)
			return err
		})
		err = classify("cast vote", err)
		if errors.Is(err, models.ErrConflict) {
			sdb.logger.Debug().
				Err(err).
				Int("user_id", userID).
				Int("post_id", postID).
				Int("attempt", attempt).
				Msg("Vote conflict")
			return "", err
		}
		if err != nil {
			return "", backoff.Permanent(err)
		}
		sdb.logger.Debug().
			Int("user_id", userID).
			Int("post_id", postID).
			Str("outcome", string(outcome)).
			Msg("Vote cast")
		return outcome, nil
	}, backoff.WithBackOff(newVoteBackOff()), backoff.WithMaxTries(sdb.voteRetries))

	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Unwrap()
	}
	if err != nil {
		return false, classify("cast vote", err)
	}
	return true, nil
}

// castVote reads the ledger row under a row lock and applies the delta
// that moves points from the old vote to the new one.
func castVote(ctx context.Context, tx DBTX, userID, postID, value int) (voteOutcome, error) {
	sql, args, _ := psql.
		Select("value").
		From("updoots").
		Where(sq.Eq{"user_id": userID, "post_id": postID}).
		Suffix("FOR UPDATE").
		ToSql()

	var current int
	err := tx.QueryRow(ctx, sql, args...).Scan(&current)
	switch {
	case isNoRows(err):
		// A concurrent first vote on the same pair makes this insert fail
		// on the primary key.
		sql, args, _ = psql.
			Insert("updoots").
			Columns("user_id", "post_id", "value").
			Values(userID, postID, value).
			ToSql()
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return "", err
		}
		return voteFirst, addPoints(ctx, tx, postID, value)
	case err != nil:
		return "", err
	case current == value:
		return voteNoop, nil
	}

	sql, args, _ = psql.
		Update("updoots").
		Set("value", value).
		Where(sq.Eq{"user_id": userID, "post_id": postID}).
		ToSql()
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return "", err
	}
	return voteFlip, addPoints(ctx, tx, postID, 2*value)
}

func addPoints(ctx context.Context, tx DBTX, postID, delta int) error {
	sql, args, _ := psql.
		Update("posts").
		Set("points", sq.Expr("points + ?", delta)).
		Where(sq.Eq{"id": postID}).
		ToSql()
	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.NotFound("post")
	}
	return nil
}

// VoteStatus returns the user's current vote value on the post, or nil.
func (sdb *SharedDB) VoteStatus(ctx context.Context, userID, postID int) (*int, error) {
	sql, args, _ := psql.
		Select("user_id", "post_id", "value").
		From("updoots").
		Where(sq.Eq{"user_id": userID, "post_id": postID}).
		ToSql()

	var updoot models.Updoot
	err := pgxscan.Get(ctx, sdb.db, &updoot, sql, args...)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("vote status", err)
	}
	return &updoot.Value, nil
}
