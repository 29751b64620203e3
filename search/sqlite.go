// sqlite.go - store the search index in an SQLite database
// Copyright (C) 2016  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package search

import (
	"context"
	"database/sql"

	// register the "sqlite" database driver
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS searchIndex (
	id INTEGER PRIMARY KEY,
	word TEXT NOT NULL,
	target TEXT NOT NULL,
	pos INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS searchIndexWord ON searchIndex (word);`

// SaveSQLite stores the index in the table "searchIndex" of the
// SQLite database at path.  The database is created if needed, and
// any previous contents of the table are replaced.
func (idx *Index) SaveSQLite(ctx context.Context, path string) (err error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer func() {
		e2 := db.Close()
		if err == nil {
			err = e2
		}
	}()

	_, err = db.ExecContext(ctx, sqliteSchema)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, "DELETE FROM searchIndex")
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO searchIndex (word, target, pos) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, rec := range idx.records {
		_, err = stmt.ExecContext(ctx, rec.Word, rec.Context, rec.Pos)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadSQLite reads all records from the "searchIndex" table of the
// SQLite database at path, ordered by word and insertion order.
func LoadSQLite(ctx context.Context, path string) ([]Record, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		"SELECT word, target, pos FROM searchIndex ORDER BY word, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Record
	for rows.Next() {
		var rec Record
		err = rows.Scan(&rec.Word, &rec.Context, &rec.Pos)
		if err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}
