package export

import (
	"context"
	"database/sql"
	"fmt"
	"volby-scraper/internal/dataset"
	"volby-scraper/lib/telemetry"

	_ "modernc.org/sqlite"
)

const (
	report_sqlite_export = "sqlite.export"
)

// Schema stores a district in long format, one row per (locality, party).
const Schema = `
create table if not exists locality (
	code text primary key,
	name text not null,
	registered integer,
	envelopes integer,
	valid integer
);

create table if not exists party_result (
	locality_code text not null references locality(code) on delete cascade,
	party text not null,
	votes integer not null,
	primary key (locality_code, party)
);
`

// OpenSQLite opens (or creates) the database at `path` and applies Schema.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// every connection to ":memory:" is its own database
	db.SetMaxOpenConns(1)

	_, err = db.Exec(Schema)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

type SQLite struct {
	db  *sql.DB
	tel telemetry.API
}

func NewSQLite(db *sql.DB, tel telemetry.API) SQLite {
	return SQLite{
		db:  db,
		tel: telemetry.NewScopedAPI("export", tel),
	}
}

// Export replaces the stored results of every locality in `records`, all in
// one transaction. It returns false without touching the database when there
// is nothing to store.
func (s SQLite) Export(ctx context.Context, records []*dataset.Record) (bool, error) {
	if len(records) == 0 {
		s.tel.ReportWarning(report_sqlite_export, "nothing to export")
		return false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	fixed := map[string]bool{}
	for _, f := range dataset.FixedFields {
		fixed[f] = true
	}

	for _, r := range records {
		code, _ := r.Get(dataset.FieldCode)
		name, _ := r.Get(dataset.FieldLocation)

		_, err = tx.ExecContext(ctx, `delete from party_result where locality_code = ?`, code)
		if err != nil {
			s.tel.ReportBroken(report_sqlite_export, code, err)
			return false, err
		}
		_, err = tx.ExecContext(
			ctx,
			`insert or replace into locality(code, name, registered, envelopes, valid) values (?, ?, ?, ?, ?)`,
			code, name,
			nullable(r, dataset.FieldRegistered),
			nullable(r, dataset.FieldEnvelopes),
			nullable(r, dataset.FieldValid),
		)
		if err != nil {
			s.tel.ReportBroken(report_sqlite_export, code, err)
			return false, err
		}

		for _, key := range r.Keys() {
			if fixed[key] {
				continue
			}
			votes, _ := r.Get(key)
			_, err = tx.ExecContext(
				ctx,
				`insert into party_result(locality_code, party, votes) values (?, ?, ?)`,
				code, key, votes,
			)
			if err != nil {
				s.tel.ReportBroken(report_sqlite_export, code, key, err)
				return false, err
			}
		}
	}

	err = tx.Commit()
	if err != nil {
		return false, err
	}
	return true, nil
}

func nullable(r *dataset.Record, key string) sql.NullString {
	value, ok := r.Get(key)
	return sql.NullString{String: value, Valid: ok}
}
