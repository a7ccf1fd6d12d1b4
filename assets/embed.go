// assets/embed.go
//
// Embedded static data shipped inside the binary:
//   - wordbank.txt: default word lists, one [section] per difficulty.
//   - sql/*.sql:    migrations for the optional SQLite word bank.

package assets

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed wordbank.txt sql/*.sql
var FS embed.FS

// WordBank returns the raw embedded default word bank.
func WordBank() (string, error) {
	b, err := FS.ReadFile("wordbank.txt")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Migrations returns the embedded migration file names in lexical order.
func Migrations() ([]string, error) {
	names, err := fs.Glob(FS, "sql/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}
