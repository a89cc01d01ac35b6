package database_test

import (
	"context"
	"testing"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/testutil"
	"storefront/pkg/logger"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := database.Open(config.Config{DBDriver: "oracle"}, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}

func TestMigrate_ForeignKeyRestrictsCategoryDelete(t *testing.T) {
	db := testutil.NewSQLite(t)

	category := models.Category{ID: "c-1", Name: "Tools"}
	require.NoError(t, db.Create(&category).Error)
	product := models.Product{ID: "p-1", Name: "Hammer", Price: decimal.NewFromInt(10), CategoryID: "c-1"}
	require.NoError(t, db.Create(&product).Error)

	err := db.Delete(&models.Category{}, "id = ?", "c-1").Error
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMigrate_UniqueCustomerEmail(t *testing.T) {
	db := testutil.NewSQLite(t)

	require.NoError(t, db.Create(&models.Customer{FirstName: "A", LastName: "B", Email: "a@x.com"}).Error)
	err := db.Create(&models.Customer{FirstName: "C", LastName: "D", Email: "a@x.com"}).Error
	assert.Error(t, err)
}

func TestSeed_OnlyWhenProductsEmpty(t *testing.T) {
	db := testutil.NewSQLite(t)
	ctx := context.Background()
	categories := repositories.NewGORMCategoryRepository(db)
	products := repositories.NewGORMProductRepository(db)

	seeded, err := database.Seed(ctx, categories, products, logger.Discard())
	require.NoError(t, err)
	assert.True(t, seeded)

	all, err := products.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	seeded, err = database.Seed(ctx, categories, products, logger.Discard())
	require.NoError(t, err)
	assert.False(t, seeded)

	all, err = products.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOpen_RecordsQueryMetrics(t *testing.T) {
	m := metrics.New()
	cfg := config.Config{DBDriver: "sqlite", DatabaseDSN: "file:metrics_test?mode=memory&cache=shared&_foreign_keys=on"}
	db, err := database.Open(cfg, m)
	require.NoError(t, err)
	defer database.Close(db)
	require.NoError(t, database.Migrate(db))

	_, err = repositories.NewGORMCategoryRepository(db).GetAll(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, promtest.CollectAndCount(m.DBQueryDuration), 1)
}
