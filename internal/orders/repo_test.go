package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/chexseeds/chexseeds-backend/pkg/db"
	"github.com/chexseeds/chexseeds-backend/pkg/db/models"
	"github.com/chexseeds/chexseeds-backend/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.Order{}, &models.OrderItem{}))
	return gdb
}

func seedOrder(orderNumber string) *models.Order {
	orderID := uuid.New()
	return &models.Order{
		ID:                 orderID,
		OrderNumber:        orderNumber,
		CustomerName:       "Ana Diaz",
		CustomerEmail:      "ana@example.com",
		CustomerPhone:      "+56911111111",
		ShippingAddress:    "Av. Siempre Viva 742",
		ShippingCity:       "Santiago",
		ShippingPostalCode: "8320000",
		Subtotal:           decimal.NewFromInt(39000),
		ShippingCost:       decimal.NewFromInt(8000),
		Total:              decimal.NewFromInt(47000),
		Status:             enums.OrderStatusPending,
		Items: []models.OrderItem{
			{
				ID:          uuid.New(),
				OrderID:     orderID,
				ProductID:   "nl-auto",
				ProductName: "Northern Lights Auto",
				Quantity:    2,
				UnitPrice:   decimal.NewFromInt(12000),
				TotalPrice:  decimal.NewFromInt(24000),
			},
		},
	}
}

func TestRepository_CreateAndFindByOrderNumber(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(newTestDB(t))
	order := seedOrder("CHX-1700000000000-AAAAAAAAA")

	require.NoError(t, repo.CreateOrder(ctx, order))
	require.NoError(t, repo.CreateOrderItems(ctx, order.Items))

	found, err := repo.FindByOrderNumber(ctx, order.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Northern Lights Auto", found.Items[0].ProductName)
	assert.True(t, found.Total.Equal(decimal.NewFromInt(47000)))
}

func TestRepository_DuplicateOrderNumberIsUniqueViolation(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(newTestDB(t))

	require.NoError(t, repo.CreateOrder(ctx, seedOrder("CHX-1-SAME")))

	err := repo.CreateOrder(ctx, seedOrder("CHX-1-SAME"))
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, "order_number"))
}

func TestRepository_FindMissingOrder(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	_, err := repo.FindByOrderNumber(context.Background(), "CHX-404")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
