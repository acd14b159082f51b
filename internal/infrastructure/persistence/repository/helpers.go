// Package repository holds the SQLite implementations of the
// application's persistence ports. All writes stamp updated_at and all
// list queries return newest first.
package repository

// scanner abstracts sql.Row and sql.Rows for shared scan functions
type scanner interface {
	Scan(dest ...interface{}) error
}

// nullIfEmpty maps an empty string to SQL NULL
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
