package database

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

// migrationDriver is the dialect of the current goose run; set by prepareGoose.
var migrationDriver string

func init() {
	goose.AddNamedMigrationContext("00002_event_datetime.go", upEventDatetime, downEventDatetime)
}

// MySQL TIMESTAMP ends at 2038-01-19 03:14:07 UTC, so event times move to
// DATETIME there. Postgres and SQLite keep the columns from 00001.
func upEventDatetime(ctx context.Context, tx *sql.Tx) error {
	if migrationDriver != "mysql" {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		"ALTER TABLE events MODIFY starts_at DATETIME(3) NOT NULL, MODIFY ends_at DATETIME(3) NULL")
	return err
}

func downEventDatetime(ctx context.Context, tx *sql.Tx) error {
	if migrationDriver != "mysql" {
		return nil
	}
	_, err := tx.ExecContext(ctx,
		"ALTER TABLE events MODIFY starts_at TIMESTAMP NOT NULL, MODIFY ends_at TIMESTAMP NULL")
	return err
}
