package sqlite

import "database/sql"

// Conn serves the live database handle. Repositories resolve it per
// operation rather than capturing it once: a restore closes and reopens
// the underlying handle, and a captured *sql.DB would go stale.
type Conn interface {
	DB() *sql.DB
}
