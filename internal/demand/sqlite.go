package demand

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // CGo-based SQLite driver
)

const demandSchema = `
CREATE TABLE IF NOT EXISTS demand (
	route_id TEXT NOT NULL,
	stop_id TEXT NOT NULL,
	hour INTEGER NOT NULL,
	weekday INTEGER NOT NULL,
	passenger_count INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_demand_route_stop ON demand (route_id, stop_id);
`

// WriteSQLite stores records in a SQLite database at path, in a single
// demand table the training pipeline can query directly. Records are
// appended inside one transaction.
func WriteSQLite(ctx context.Context, path string, records []Record) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening demand database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.ExecContext(ctx, demandSchema); err != nil {
		return fmt.Errorf("creating demand schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO demand (route_id, stop_id, hour, weekday, passenger_count) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, record := range records {
		_, err := stmt.ExecContext(ctx,
			record.RouteID, record.StopID, record.Hour, record.Weekday, record.PassengerCount)
		if err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return fmt.Errorf("inserting demand record: %w", err)
		}
	}

	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
