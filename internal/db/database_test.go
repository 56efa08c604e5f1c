package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/cartshop/internal/config"
	"github.com/Skotchmaster/cartshop/internal/models"
)

func TestOpenAndMigrateSQLite(t *testing.T) {
	ctx := context.Background()
	gdb, err := Open(ctx, config.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })

	require.NoError(t, Migrate(ctx, gdb))
	require.NoError(t, Migrate(ctx, gdb), "schema creation must be idempotent")

	require.True(t, gdb.Migrator().HasTable(&models.Product{}))
	require.True(t, gdb.Migrator().HasTable(&models.CartItem{}))
	require.True(t, gdb.Migrator().HasIndex(&models.CartItem{}, "idx_cart_items_product"))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever")
	require.Error(t, err)
}

func TestOpenRejectsEmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), config.DriverSQLite, "")
	require.Error(t, err)
}

func TestCartItemProductIDIsUnique(t *testing.T) {
	ctx := context.Background()
	gdb, err := Open(ctx, config.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })
	require.NoError(t, Migrate(ctx, gdb))

	require.NoError(t, gdb.Create(&models.CartItem{ProductID: 7, Quantity: 1}).Error)
	require.ErrorIs(t, gdb.Create(&models.CartItem{ProductID: 7, Quantity: 1}).Error, gorm.ErrDuplicatedKey)
}
