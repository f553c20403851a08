package store

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	perrors "github.com/abgdnv/productcatalog/internal/errors"
	"github.com/abgdnv/productcatalog/internal/migrations"
	"github.com/abgdnv/productcatalog/internal/product"
	"github.com/abgdnv/productcatalog/internal/repository"
	"github.com/abgdnv/productcatalog/pkg/bootstrap"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const skipIntegrationTests = "CATALOG_SKIP_INTEGRATION_TESTS"

// StoreSuite runs the same repository checks against PgStore and GormStore on a real PostgreSQL.
type StoreSuite struct {
	suite.Suite
	pgContainer *postgres.PostgresContainer
	dbPool      *pgxpool.Pool
	closeGorm   func() error
	stores      map[string]repository.Repository[product.Product]
	logger      *slog.Logger
	ctx         context.Context
}

func (s *StoreSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:17.5-alpine",
		postgres.WithDatabase("catalog"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to run PostgreSQL container")

	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get connection string from container")

	require.NoError(s.T(), migrations.Up(connStr), "Failed to apply migrations")

	s.dbPool, err = bootstrap.NewDbPool(s.ctx, connStr, 10*time.Second)
	require.NoError(s.T(), err, "Failed to create pgxpool")

	gormDB, closeGorm, err := bootstrap.NewGormDB(s.ctx, connStr, 10*time.Second)
	require.NoError(s.T(), err, "Failed to open gorm")
	s.closeGorm = closeGorm

	s.stores = map[string]repository.Repository[product.Product]{
		"pgx":  NewPgStore(s.dbPool),
		"gorm": NewGormStore[product.Product](gormDB),
	}
	s.logger.Info("Initialization complete for StoreSuite")
}

func (s *StoreSuite) TearDownSuite() {
	if s.closeGorm != nil {
		_ = s.closeGorm()
	}
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Warn("failed to terminate PostgreSQL container", "error", err)
		}
	}
}

func (s *StoreSuite) SetupTest() {
	_, err := s.dbPool.Exec(s.ctx, "TRUNCATE TABLE products RESTART IDENTITY")
	require.NoError(s.T(), err, "Failed to truncate products table")
}

func TestStoreIntegration(t *testing.T) {
	if os.Getenv(skipIntegrationTests) == "1" {
		t.Skip("Skipping integration tests based on " + skipIntegrationTests + " env var")
	}
	suite.Run(t, new(StoreSuite))
}

// eachStore runs fn against every backend on a clean table.
func (s *StoreSuite) eachStore(fn func(repo repository.Repository[product.Product])) {
	for name, repo := range s.stores {
		s.Run(name, func() {
			s.SetupTest()
			fn(repo)
		})
	}
}

func (s *StoreSuite) create(repo repository.Repository[product.Product], name, price string) *product.Product {
	s.T().Helper()
	p := &product.Product{Name: name, Stock: 5, Color: "black", Price: decimal.RequireFromString(price)}
	require.NoError(s.T(), repo.Create(s.ctx, p))
	return p
}

func (s *StoreSuite) TestCreateAndGetByID() {
	s.eachStore(func(repo repository.Repository[product.Product]) {
		created := s.create(repo, "Desk lamp", "24.50")
		require.Equal(s.T(), int64(1), created.ID)

		fetched, err := repo.GetByID(s.ctx, created.ID)

		require.NoError(s.T(), err)
		assert.Equal(s.T(), created.Name, fetched.Name)
		assert.Equal(s.T(), created.Stock, fetched.Stock)
		assert.Equal(s.T(), created.Color, fetched.Color)
		assert.True(s.T(), created.Price.Equal(fetched.Price), "price %s != %s", created.Price, fetched.Price)
	})
}

func (s *StoreSuite) TestCreate_IgnoresPresetID() {
	s.eachStore(func(repo repository.Repository[product.Product]) {
		preset := &product.Product{ID: 77, Name: "Preset", Stock: 1, Price: decimal.RequireFromString("3.00")}

		require.NoError(s.T(), repo.Create(s.ctx, preset))
		next := s.create(repo, "Next", "4.00")

		assert.Equal(s.T(), int64(1), preset.ID)
		assert.Equal(s.T(), int64(2), next.ID)
		_, err := repo.GetByID(s.ctx, 77)
		assert.ErrorIs(s.T(), err, perrors.ErrNotFound)
		fetched, err := repo.GetByID(s.ctx, 1)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), "Preset", fetched.Name)
	})
}

func (s *StoreSuite) TestGetByID_NotFound() {
	s.eachStore(func(repo repository.Repository[product.Product]) {
		_, err := repo.GetByID(s.ctx, 999)
		require.ErrorIs(s.T(), err, perrors.ErrNotFound)
	})
}

func (s *StoreSuite) TestGetAll() {
	s.eachStore(func(repo repository.Repository[product.Product]) {
		empty, err := repo.GetAll(s.ctx)
		require.NoError(s.T(), err)
		assert.Empty(s.T(), empty)

		s.create(repo, "Product A", "1.00")
		s.create(repo, "Product B", "2.00")

		list, err := repo.GetAll(s.ctx)

		require.NoError(s.T(), err)
		require.Len(s.T(), list, 2)
		assert.Equal(s.T(), "Product A", list[0].Name)
		assert.Equal(s.T(), "Product B", list[1].Name)
	})
}

func (s *StoreSuite) TestUpdate() {
	s.eachStore(func(repo repository.Repository[product.Product]) {
		created := s.create(repo, "Chair", "40.00")
		replacement := &product.Product{ID: created.ID, Name: "Armchair", Stock: 2, Color: "green", Price: decimal.RequireFromString("99.90")}

		err := repo.Update(s.ctx, replacement)

		require.NoError(s.T(), err)
		fetched, err := repo.GetByID(s.ctx, created.ID)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), "Armchair", fetched.Name)
		assert.Equal(s.T(), 2, fetched.Stock)
		assert.Equal(s.T(), "green", fetched.Color)
		assert.True(s.T(), replacement.Price.Equal(fetched.Price))
	})
}

func (s *StoreSuite) TestUpdate_AbsentIsNoOp() {
	s.eachStore(func(repo repository.Repository[product.Product]) {
		err := repo.Update(s.ctx, &product.Product{ID: 77, Name: "Ghost"})

		require.NoError(s.T(), err)
		list, err := repo.GetAll(s.ctx)
		require.NoError(s.T(), err)
		assert.Empty(s.T(), list)
	})
}

func (s *StoreSuite) TestDelete() {
	s.eachStore(func(repo repository.Repository[product.Product]) {
		created := s.create(repo, "Table", "120.00")

		err := repo.Delete(s.ctx, created)

		require.NoError(s.T(), err)
		_, err = repo.GetByID(s.ctx, created.ID)
		require.ErrorIs(s.T(), err, perrors.ErrNotFound)
	})
}
