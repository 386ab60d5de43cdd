package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/sea-companion/internal/domain"
	"github.com/sea-companion/internal/domain/repository"
	"github.com/sea-companion/internal/repository/postgres/testhelpers"
)

// RepositoryTestSuite тестирует хранилище записей и каталог на реальной БД
type RepositoryTestSuite struct {
	suite.Suite
	testDB  *testhelpers.TestDB
	blobs   repository.BlobRepository
	catalog repository.CatalogRepository
	ctx     context.Context
}

// SetupSuite выполняется один раз перед всеми тестами
func (s *RepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	err := testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations")
	s.Require().NoError(err, "Failed to apply migrations")

	s.blobs = testhelpers.NewBlobRepositoryForTest(s.testDB.DB, s.testDB.Logger)
	s.catalog = testhelpers.NewCatalogRepositoryForTest(s.testDB.DB, s.testDB.Logger)
}

// TearDownSuite выполняется один раз после всех тестов
func (s *RepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		_ = s.testDB.Cleanup(context.Background())
		s.testDB.Close()
	}
}

// SetupTest выполняется перед каждым тестом
func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.testDB.Cleanup(s.ctx))
}

// ============================================================================
// BlobRepository Tests
// ============================================================================

func (s *RepositoryTestSuite) TestBlob_MissingKey() {
	data, err := s.blobs.Get(s.ctx, "cfm.catches")

	s.NoError(err)
	s.Nil(data)
}

func (s *RepositoryTestSuite) TestBlob_UpsertReplacesDocument() {
	s.Require().NoError(s.blobs.Set(s.ctx, "cfm.catches", []byte(`[{"id":"a"}]`)))
	s.Require().NoError(s.blobs.Set(s.ctx, "cfm.catches", []byte(`[{"id":"b"},{"id":"a"}]`)))

	data, err := s.blobs.Get(s.ctx, "cfm.catches")
	s.NoError(err)
	s.JSONEq(`[{"id":"b"},{"id":"a"}]`, string(data))

	n, err := testhelpers.CountBlobs(s.testDB.DB.DB)
	s.NoError(err)
	s.Equal(1, n)
}

func (s *RepositoryTestSuite) TestBlob_RoundTripIsByteExact() {
	doc := []byte(`{"z":1,"a":{"species":"Pomfret\u0000"},  "m":[3,2,1]}`)
	s.Require().NoError(s.blobs.Set(s.ctx, "cfm.forecast", doc))

	data, err := s.blobs.Get(s.ctx, "cfm.forecast")
	s.NoError(err)
	s.Equal(string(doc), string(data))
}

func (s *RepositoryTestSuite) TestBlob_DeleteMany() {
	s.Require().NoError(s.blobs.Set(s.ctx, "cfm.catches", []byte(`[]`)))
	s.Require().NoError(s.blobs.Set(s.ctx, "cfm.trips", []byte(`[]`)))
	s.Require().NoError(s.blobs.Set(s.ctx, "cfm.settings", []byte(`{"lowPowerMode":true}`)))

	s.NoError(s.blobs.Delete(s.ctx, "cfm.catches", "cfm.trips", "cfm.alerts"))

	n, err := testhelpers.CountBlobs(s.testDB.DB.DB)
	s.NoError(err)
	s.Equal(1, n)
}

// ============================================================================
// CatalogRepository Tests
// ============================================================================

func (s *RepositoryTestSuite) TestCatalog_OrderedByPosition() {
	s.Require().NoError(testhelpers.LoadFixtures(s.testDB.DB.DB, "testdata", []string{"catalog.sql"}))

	zones, err := s.catalog.Zones(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(zones, 2)
	s.Equal("z-monsoon", zones[0].ID)
	s.Equal(domain.SeasonBanned, zones[0].Season)
	s.Equal("z-harbour", zones[1].ID)
	s.Equal(domain.ZoneKindRestricted, zones[1].Kind)
	s.Len(zones[1].Coordinates, 4)
	s.Equal(domain.Position{Lat: 18.90, Lon: 72.80}, zones[1].Coordinates[0])

	boundaries, err := s.catalog.Boundaries(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(boundaries, 1)
	s.Equal("b-naval", boundaries[0].ID)
}

func (s *RepositoryTestSuite) TestCatalog_Empty() {
	zones, err := s.catalog.Zones(s.ctx)

	s.NoError(err)
	s.Empty(zones)
}

// TestRepositoryTestSuite запускает suite
func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
