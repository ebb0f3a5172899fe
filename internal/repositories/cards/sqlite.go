package cards

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/KirkDiggler/booster-sim/internal/errors"
	"github.com/KirkDiggler/booster-sim/internal/pkg/sqlitemigrate"
	"github.com/KirkDiggler/booster-sim/internal/repositories/cards/migrations"
)

const sqlitePragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// SQLite is a card store over the rarities/types/sets/cards schema
type SQLite struct {
	db *sql.DB
}

// Ensure SQLite implements the store contracts
var (
	_ Repository = (*SQLite)(nil)
	_ Writer     = (*SQLite)(nil)
)

// OpenSQLite opens a SQLite card store and applies embedded migrations
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.InvalidArgument("storage path is required")
	}

	db, err := sql.Open("sqlite", filepath.Clean(path)+sqlitePragmas)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to open sqlite db")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping sqlite db")
	}
	if err := sqlitemigrate.Apply(ctx, db, migrations.FS, ""); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to run card store migrations")
	}

	return &SQLite{db: db}, nil
}

// Close closes the SQLite handle
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ListBySet implements Repository. The set is matched by its short name
// against the code and any aliases.
func (s *SQLite) ListBySet(ctx context.Context, input ListBySetInput) (*ListBySetOutput, error) {
	code := strings.TrimSpace(input.SetCode)
	if code == "" {
		return nil, errors.InvalidArgument(errSetCodeEmpty)
	}

	names := []string{code}
	for _, alias := range input.Aliases {
		if alias = strings.TrimSpace(alias); alias != "" && alias != code {
			names = append(names, alias)
		}
	}

	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}

	query := `SELECT cards.name, cards.id_in_set, rarities.name, types.name, sets.short_name, cards.image_url
		FROM cards
		INNER JOIN rarities ON cards.rarity_id = rarities.id
		INNER JOIN types ON cards.type_id = types.id
		INNER JOIN sets ON cards.set_id = sets.id
		WHERE sets.short_name IN (?` + strings.Repeat(", ?", len(names)-1) + `)`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to list cards for set %s", code)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Name, &rec.PositionInSet, &rec.RarityName, &rec.SlotName, &rec.SetName, &rec.ImageURL); err != nil {
			return nil, errors.Wrapf(err, "failed to scan card in set %s", code)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to iterate cards in set %s", code)
	}

	return &ListBySetOutput{Records: records}, nil
}

// Upsert implements Writer. Rarity, type and set rows are created on demand.
func (s *SQLite) Upsert(ctx context.Context, input UpsertInput) (*UpsertOutput, error) {
	code := strings.TrimSpace(input.SetCode)
	if code == "" {
		return nil, errors.InvalidArgument(errSetCodeEmpty)
	}
	if err := validateRecords(input.Records); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to begin card upsert")
	}
	defer func() { _ = tx.Rollback() }()

	setID, err := lookupOrCreate(ctx, tx, "sets", "short_name", code)
	if err != nil {
		return nil, err
	}

	for _, rec := range input.Records {
		rarityID, err := lookupOrCreate(ctx, tx, "rarities", "name", strings.TrimSpace(rec.RarityName))
		if err != nil {
			return nil, err
		}
		typeID, err := lookupOrCreate(ctx, tx, "types", "name", strings.TrimSpace(rec.SlotName))
		if err != nil {
			return nil, err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cards (name, id_in_set, rarity_id, type_id, set_id, image_url)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT (set_id, id_in_set) DO UPDATE SET
			   name = excluded.name,
			   rarity_id = excluded.rarity_id,
			   type_id = excluded.type_id,
			   image_url = excluded.image_url`,
			rec.Name, rec.PositionInSet, rarityID, typeID, setID, rec.ImageURL,
		); err != nil {
			return nil, errors.Wrapf(err, "failed to store card %q", rec.Name)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to commit card upsert")
	}

	return &UpsertOutput{Stored: len(input.Records)}, nil
}

// lookupOrCreate returns the id of the row in a name table, inserting it first
// when missing. table and column are package constants, never user input.
func lookupOrCreate(ctx context.Context, tx *sql.Tx, table, column, value string) (int64, error) {
	if _, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO "+table+" ("+column+") VALUES (?)", value,
	); err != nil {
		return 0, errors.Wrapf(err, "failed to insert %s %q", table, value)
	}

	var id int64
	if err := tx.QueryRowContext(ctx,
		"SELECT id FROM "+table+" WHERE "+column+" = ?", value,
	).Scan(&id); err != nil {
		return 0, errors.Wrapf(err, "failed to look up %s %q", table, value)
	}
	return id, nil
}
