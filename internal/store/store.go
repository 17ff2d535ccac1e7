// Package store persists the link catalog and the user/event log in an
// embedded SQLite database.
package store

import (
	"context"
	"fmt"
	"strconv"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store wraps the database handle. Every operation is a single statement;
// no cross-statement transactions are needed.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.AutoMigrate(&Game{}, &User{}, &Event{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// SeedGame is one entry of the initial catalog.
type SeedGame struct {
	Title string
	URL   string
}

// Seed inserts the given games when the catalog is empty. Subsequent calls
// are no-ops, so legacy env-var links are only ever imported once.
func (s *Store) Seed(ctx context.Context, games []SeedGame) error {
	count, err := s.CountGames(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, g := range games {
		if _, err := s.AddGame(ctx, g.Title, g.URL); err != nil {
			return fmt.Errorf("seeding game %q: %w", g.Title, err)
		}
	}
	return nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
