package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/sea-companion/internal/domain/repository"
	"github.com/sea-companion/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewBlobRepositoryForTest creates a record blob repository with test database and logger
func NewBlobRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.BlobRepository {
	return postgres.NewBlobRepository(NewDBForTest(db, logger))
}

// NewCatalogRepositoryForTest creates a catalog repository with test database and logger
func NewCatalogRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.CatalogRepository {
	return postgres.NewCatalogRepository(NewDBForTest(db, logger))
}
