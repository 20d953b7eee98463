package repositories

import (
	"database/sql"
	"time"

	intconfig "github.com/Abhisheklodhi2001/Austria-Express/internal/config"
)

func pickDB(db *sql.DB) *sql.DB {
	if db != nil {
		return db
	}
	return intconfig.DB
}

// DATE columns are compared as plain YYYY-MM-DD strings.
func dateArg(t time.Time) string {
	return t.Format("2006-01-02")
}
