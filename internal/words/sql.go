// internal/words/sql.go
//
// SQLite-backed word bank. The schema lives in assets/sql and is applied by
// the binary's migrate step; this file only reads it.
//
//	word_bank(difficulty TEXT, position INTEGER, word TEXT)

package words

import (
	"context"
	"database/sql"
	"fmt"
)

// LoadSQL reads every row of word_bank, ordered by difficulty position.
// Rows with an unknown difficulty are reported as errors so a typo in the
// table is not silently ignored.
func LoadSQL(ctx context.Context, db *sql.DB) (*Bank, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT difficulty, word FROM word_bank ORDER BY difficulty, position`)
	if err != nil {
		return nil, fmt.Errorf("query word_bank: %w", err)
	}
	defer rows.Close()

	lists := make(map[Difficulty][]string)
	for rows.Next() {
		var rawDiff, word string
		if err := rows.Scan(&rawDiff, &word); err != nil {
			return nil, fmt.Errorf("scan word_bank: %w", err)
		}
		d, err := ParseDifficulty(rawDiff)
		if err != nil {
			return nil, err
		}
		lists[d] = append(lists[d], word)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	b := NewBank(lists)
	if b.empty() {
		return nil, ErrEmptyBank
	}
	return b, nil
}
