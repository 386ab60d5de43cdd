package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

// LoadFixtures loads SQL fixture files into the database
func LoadFixtures(db *sql.DB, fixturesPath string, files []string) error {
	for _, file := range files {
		path := filepath.Join(fixturesPath, file)
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read fixture %s: %w", file, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("load fixture %s: %w", file, err)
		}
	}

	return nil
}

// CountBlobs returns how many record collections are stored
func CountBlobs(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM record_blobs").Scan(&n); err != nil {
		return 0, fmt.Errorf("count record blobs: %w", err)
	}
	return n, nil
}
