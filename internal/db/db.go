package db

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose"
	"github.com/rs/zerolog"
)

// Options - параметры пула соединений
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Connect открывает пул соединений с PostgreSQL и проверяет связь
func Connect(dsn string, opts Options, logger zerolog.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}

	logger.Info().Msg("connected to PostgreSQL")
	return db, nil
}

// Migrate накатывает SQL-миграции goose из каталога dir
func Migrate(db *sql.DB, dir string, logger zerolog.Logger) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "goose dialect")
	}
	if err := goose.Up(db, dir); err != nil {
		return errors.Wrapf(err, "apply migrations from %s", dir)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return errors.Wrap(err, "read schema version")
	}
	logger.Info().Int64("version", version).Str("dir", dir).Msg("migrations applied")
	return nil
}
