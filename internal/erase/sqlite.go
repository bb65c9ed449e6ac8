package erase

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/lakshaymaurya-felt/mypcnow/internal/core"
)

// AllowedTables is the closed set of table names the scrubber will ever
// place into a statement. Names are compared exactly.
var AllowedTables = map[string]struct{}{
	"urls":                 {},
	"visits":               {},
	"keyword_search_terms": {},
	"downloads":            {},
	"downloads_url_chains": {},
	"segments":             {},
	"segment_usage":        {},
	"cookies":              {},
	"moz_historyvisits":    {},
	"moz_inputhistory":     {},
	"moz_cookies":          {},
	"moz_places":           {},
}

// rowFilters narrows the delete on some allowed tables to a fixed predicate.
// moz_places also backs bookmarks, so only rows nothing else references go.
var rowFilters = map[string]string{
	"moz_places": "foreign_count = 0 AND visit_count = 0",
}

// busyTimeout is how long a statement waits on another connection's lock.
const busyTimeout = 2 * time.Second

// IsAllowedTable reports whether name may be used in a scrub statement.
func IsAllowedTable(name string) bool {
	_, ok := AllowedTables[name]
	return ok
}

// Scrubber empties tables of embedded SQLite databases.
type Scrubber struct {
	logger *zap.Logger
}

// NewScrubber creates a Scrubber.
func NewScrubber(logger *zap.Logger) *Scrubber {
	return &Scrubber{logger: logger.Named("erase.sqlite")}
}

// ScrubTables deletes all rows of each table in tables from the database at
// dbPath, commits, and compacts the file. It returns the number of rows
// deleted.
//
// Names outside AllowedTables are reported and skipped; they never reach a
// query. Tables absent from this schema version are ignored. A missing file
// returns an error marked core.ErrNotFound without reporting; a database
// locked by its owning application is reported as a skip and marked
// core.ErrBusy.
func (s *Scrubber) ScrubTables(ctx context.Context, dbPath string, tables []string, out core.Sink) (int64, error) {
	if !filepath.IsAbs(dbPath) {
		return 0, errors.Mark(errors.Newf("refusing relative path %q", dbPath), core.ErrRejected)
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return 0, errors.Mark(err, core.ErrNotFound)
	}
	if info.IsDir() {
		return 0, errors.Mark(errors.Newf("%s is a directory", dbPath), core.ErrNotFound)
	}

	rows, err := s.scrub(ctx, dbPath, tables, out)
	if err != nil {
		err = markSQLite(err)
		name := filepath.Base(dbPath)
		if core.Classify(err) == core.KindBusy {
			core.Logf(out, "  [skip] database locked: %s", name)
		} else {
			core.Logf(out, "  [error] %s: %v", name, err)
		}
		s.logger.Debug("Scrub failed",
			zap.String("db", dbPath),
			zap.Stringer("kind", core.Classify(err)),
			zap.Error(err))
		return rows, err
	}

	s.logger.Debug("Scrubbed database",
		zap.String("db", dbPath),
		zap.Strings("tables", tables),
		zap.Int64("rows", rows))
	return rows, nil
}

func (s *Scrubber) scrub(ctx context.Context, dbPath string, tables []string, out core.Sink) (int64, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return 0, errors.Wrap(err, "open")
	}
	defer db.Close()

	// One connection, so the pragma and VACUUM see the same session.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = "+strconv.FormatInt(busyTimeout.Milliseconds(), 10)); err != nil {
		return 0, errors.Wrap(err, "set busy timeout")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "begin")
	}

	var total int64
	for _, table := range tables {
		if !IsAllowedTable(table) {
			core.Logf(out, "  [skip] table not allowed: %q", table)
			s.logger.Warn("Rejected table name", zap.String("table", table), zap.String("db", dbPath))
			continue
		}

		stmt := "DELETE FROM " + table
		if where, ok := rowFilters[table]; ok {
			stmt += " WHERE " + where
		}

		res, err := tx.ExecContext(ctx, stmt)
		if err != nil {
			if isMissingSchema(err) {
				s.logger.Debug("Table absent", zap.String("table", table), zap.String("db", dbPath))
				continue
			}
			_ = tx.Rollback()
			return 0, errors.Wrapf(err, "delete from %s", table)
		}
		if n, err := res.RowsAffected(); err == nil {
			total += n
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "commit")
	}
	if _, err := db.ExecContext(ctx, "VACUUM"); err != nil {
		return total, errors.Wrap(err, "vacuum")
	}
	return total, nil
}

// isMissingSchema reports whether a statement failed because this schema
// version lacks the table or the filter column.
func isMissingSchema(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "no such table") || strings.Contains(msg, "no such column")
}

// markSQLite tags lock contention so it classifies as busy. CANTOPEN is
// included because Windows refuses to open a file the browser holds
// without share flags.
func markSQLite(err error) error {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return err
	}
	switch se.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_CANTOPEN:
		return errors.Mark(err, core.ErrBusy)
	}
	return err
}
