package store

import (
	"database/sql"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

type Store struct {
	DB *sql.DB
}

func NewStore(dataSourceName string) (*Store, error) {
	// Foreign keys are off by default in SQLite and must be enabled on
	// every pooled connection; offers rely on ON DELETE CASCADE.
	if !strings.Contains(dataSourceName, "?") {
		dataSourceName = "file:" + dataSourceName + "?_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}
