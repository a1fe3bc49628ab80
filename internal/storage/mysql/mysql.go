package mysql

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/pressly/goose/v3"
	"production-api/internal/config"
	"production-api/internal/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

// MySQL server error numbers the repository translates into storage errors.
const (
	errDuplicateEntry     = 1062
	errRowIsReferenced    = 1451
	errNoReferencedRow    = 1452
	errRowIsReferencedOld = 1217
	errNoReferencedRowOld = 1216
)

type Storage struct {
	db *sql.DB
}

func New(cfg config.Config) (*Storage, error) {
	const op = "storage.mysql.New"

	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// DSN builds the driver connection string from the config.
func DSN(cfg config.Config) string {
	mc := mysql.NewConfig()
	mc.User = cfg.DBUser
	mc.Passwd = cfg.DBPassword
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(cfg.DBHost, strconv.Itoa(cfg.DBPort))
	mc.DBName = cfg.DBName
	mc.ParseTime = cfg.ParseTime
	// UPDATE must report matched rows, otherwise replacing a record with
	// identical values looks like a missing id.
	mc.ClientFoundRows = true

	return mc.FormatDSN()
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// Migrate applies the embedded goose migrations.
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.mysql.Migrate"

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("%s: ошибка применения миграций: %w", op, err)
	}

	return nil
}

// mapError converts driver constraint violations into storage sentinels so
// callers can tell them apart from infrastructure failures.
func mapError(err error) error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return err
	}

	switch mysqlErr.Number {
	case errDuplicateEntry:
		return fmt.Errorf("%w: %s", storage.ErrAlreadyExists, mysqlErr.Message)
	case errNoReferencedRow, errNoReferencedRowOld:
		return fmt.Errorf("%w: %s", storage.ErrReferenceNotFound, mysqlErr.Message)
	case errRowIsReferenced, errRowIsReferencedOld:
		return fmt.Errorf("%w: %s", storage.ErrReferenced, mysqlErr.Message)
	}

	return err
}

func normalizeList(p storage.ListParams) storage.ListParams {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = storage.DefaultListLimit
	}
	if p.Limit > storage.MaxListLimit {
		p.Limit = storage.MaxListLimit
	}

	return p
}

// checkAffected reports storage.ErrNotFound when an UPDATE or DELETE by id
// touched nothing.
func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}

	return nil
}
