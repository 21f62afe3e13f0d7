package db

import "database/sql"

// DB wraps the sql.DB handle so packages depend on a single local type
// instead of database/sql directly.
type DB struct {
	*sql.DB
}
