package db

import (
	"context"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"
	"gitlab.com/ranfdev/updoot/internal/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// DBTX is satisfied by both the pool and an open transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type SharedDB struct {
	db          *pgxpool.Pool
	logger      zerolog.Logger
	voteRetries uint
}

func Connect(config *models.EnvConfig, logger zerolog.Logger) (SharedDB, error) {
	poolConfig, err := pgxpool.ParseConfig(config.DatabaseURL)
	if err != nil {
		return SharedDB{}, fmt.Errorf("Failed to parse database url: %w", err)
	}
	if config.MaxConns > 0 {
		poolConfig.MaxConns = config.MaxConns
	}
	// Statements and abandoned transactions can't hold row locks forever.
	if ms := config.StatementTimeout.Milliseconds(); ms > 0 {
		timeout := strconv.FormatInt(ms, 10)
		poolConfig.ConnConfig.RuntimeParams["statement_timeout"] = timeout
		poolConfig.ConnConfig.RuntimeParams["idle_in_transaction_session_timeout"] = timeout
	}

	db, err := pgxpool.ConnectConfig(context.Background(), poolConfig)
	if err != nil {
		return SharedDB{}, fmt.Errorf("Failed to connect to postgres: %w", err)
	}

	voteRetries := config.VoteRetries
	if voteRetries == 0 {
		voteRetries = 1
	}
	return SharedDB{
		db:          db,
		logger:      logger.With().Str("component", "db").Logger(),
		voteRetries: voteRetries,
	}, nil
}
func (sdb *SharedDB) Ping(ctx context.Context) error {
	return sdb.db.Ping(ctx)
}
func (sdb *SharedDB) Stat() *pgxpool.Stat {
	return sdb.db.Stat()
}
func (sdb *SharedDB) Close() {
	sdb.db.Close()
}

// execTx runs txFunc inside a transaction at the server's default
// isolation level (read committed). Any error rolls everything back.
func execTx(ctx context.Context, db DBTX, txFunc func(context.Context, DBTX) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = txFunc(ctx, tx)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}
