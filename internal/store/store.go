package store

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/johnwards/vitrine/internal/database"
)

// Store holds all sub-stores used by the application.
type Store struct {
	DB      *sql.DB
	Dialect database.Dialect
	Catalog *SQLCatalogStore
	Slugs   *SQLSlugResolver
}

// New creates a Store with all sub-stores initialized.
func New(db *sql.DB, d database.Dialect, logger *zap.Logger) *Store {
	return &Store{
		DB:      db,
		Dialect: d,
		Catalog: NewSQLCatalogStore(db, d, logger),
		Slugs:   NewSQLSlugResolver(db, d),
	}
}
