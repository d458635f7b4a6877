package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
)

const createMazesTable = "CREATE TABLE IF NOT EXISTS mazes (" +
	"id CHAR(36) NOT NULL PRIMARY KEY, " +
	"created_at DATETIME NOT NULL, " +
	"generator_version BIGINT NOT NULL, " +
	"seed BIGINT UNSIGNED NOT NULL, " +
	"width BIGINT NOT NULL, " +
	"height BIGINT NOT NULL, " +
	"regression_id CHAR(64) NOT NULL, " +
	"record BLOB NOT NULL)"

// DbConfig reads the connection settings of the maze archive from the
// environment.
func DbConfig() *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = os.Getenv("LABYRINTH_DBUSER")
	cfg.Passwd = os.Getenv("LABYRINTH_DBPASSWORD")
	cfg.Net = "tcp"
	cfg.Addr = os.Getenv("LABYRINTH_DBADDR")
	cfg.DBName = os.Getenv("LABYRINTH_DBNAME")
	cfg.AllowNativePasswords = true
	cfg.ParseTime = true
	return cfg
}

func ConnectToDb(ctx context.Context, cfg *mysql.Config) (*sql.DB, error) {
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid database settings: %w", ErrConfig, err)
	}
	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: failed to connect to %s: %w", ErrIO, cfg.Addr, err)
	}
	return db, nil
}

func InitDb(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createMazesTable); err != nil {
		return fmt.Errorf("%w: failed to create the mazes table: %w", ErrIO, err)
	}
	return nil
}

func UploadRecord(ctx context.Context, db *sql.DB, r *MazeRecord) error {
	_, err := db.ExecContext(ctx, "INSERT INTO mazes "+
		"(id, created_at, generator_version, seed, width, height, "+
		"regression_id, record) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		r.Id.String(),
		time.Now().UTC(),
		r.GeneratorVersion,
		r.Seed,
		r.Width,
		r.Height,
		r.RegressionId,
		r.Serialize())
	if err != nil {
		return fmt.Errorf("%w: failed to upload record %s: %w", ErrIO, r.Id, err)
	}
	return nil
}

// DownloadRecords writes every record in the archive to dir, one file per
// record named after its id. It returns the number of records written.
func DownloadRecords(ctx context.Context, db *sql.DB, dir string) (n int, err error) {
	rows, err := db.QueryContext(ctx, "SELECT id, record FROM mazes")
	if err != nil {
		return 0, fmt.Errorf("%w: failed to query records: %w", ErrIO, err)
	}
	defer func(rows *sql.Rows) {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrIO, closeErr)
		}
	}(rows)

	if err = os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("%w: failed to create %s: %w", ErrIO, dir, err)
	}

	for rows.Next() {
		var id uuid.UUID
		var data []byte
		if err = rows.Scan(&id, &data); err != nil {
			return n, fmt.Errorf("%w: failed to read record: %w", ErrIO, err)
		}
		filename := filepath.Join(dir, id.String()+RecordExtension)
		if err = os.WriteFile(filename, data, 0644); err != nil {
			return n, fmt.Errorf("%w: failed to write %s: %w", ErrIO, filename, err)
		}
		n++
	}
	if err = rows.Err(); err != nil {
		return n, fmt.Errorf("%w: failed to read records: %w", ErrIO, err)
	}
	return n, nil
}
