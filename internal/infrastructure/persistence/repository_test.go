package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/erp/obligations/internal/domain/finance"
	"github.com/erp/obligations/internal/domain/shared"
	"github.com/erp/obligations/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOriginTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAccountPayableRepository_RoundTrip(t *testing.T) {
	db := setupOriginTestDB(t)
	repo := NewGormAccountPayableRepository(db)
	ctx := context.Background()

	later, err := finance.NewAccountPayable("Software license", "Tools Inc", decimal.NewFromInt(1200), date(2025, 4, 10))
	require.NoError(t, err)
	sooner, err := finance.NewAccountPayable("Office rent", "Acme Ltda", decimal.RequireFromString("2500.50"), date(2025, 3, 5))
	require.NoError(t, err)
	approver := "finance-lead"
	sooner.ApprovedBy = &approver

	require.NoError(t, repo.Save(ctx, later))
	require.NoError(t, repo.Save(ctx, sooner))

	t.Run("find all orders by due date", func(t *testing.T) {
		list, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, sooner.ID, list[0].ID)
		assert.Equal(t, later.ID, list[1].ID)
		assert.True(t, decimal.RequireFromString("2500.50").Equal(list[0].TotalAmount))
		assert.Equal(t, "finance-lead", *list[0].ApprovedBy)
		assert.Equal(t, finance.PayableStatusPending, list[0].Status)
	})

	t.Run("find by id returns not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("save with lock applies update once", func(t *testing.T) {
		loaded, err := repo.FindByID(ctx, sooner.ID)
		require.NoError(t, err)

		paid := finance.PayableStatusPaid
		method := "PIX"
		require.NoError(t, loaded.ApplyUpdate(finance.PayableUpdate{
			Status:  &paid,
			Payment: &finance.PaymentDetails{PaymentMethod: &method},
		}, time.Now()))
		require.NoError(t, repo.SaveWithLock(ctx, loaded))

		stored, err := repo.FindByID(ctx, sooner.ID)
		require.NoError(t, err)
		assert.Equal(t, finance.PayableStatusPaid, stored.Status)
		assert.Equal(t, "PIX", *stored.Payment.PaymentMethod)
		assert.Equal(t, 2, stored.Version)

		// the same stale copy cannot be written twice
		err = repo.SaveWithLock(ctx, loaded)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestAccountReceivableRepository_SaveWithLock(t *testing.T) {
	db := setupOriginTestDB(t)
	repo := NewGormAccountReceivableRepository(db)
	ctx := context.Background()

	ar, err := finance.NewAccountReceivable("Consulting", "Maria Silva", decimal.NewFromInt(800), date(2025, 3, 1))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, ar))

	first, err := repo.FindByID(ctx, ar.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, ar.ID)
	require.NoError(t, err)

	received := finance.ReceivableStatusReceived
	require.NoError(t, first.ApplyUpdate(finance.ReceivableUpdate{Status: &received}, time.Now()))
	require.NoError(t, repo.SaveWithLock(ctx, first))

	pending := finance.ReceivableStatusPending
	require.NoError(t, second.ApplyUpdate(finance.ReceivableUpdate{Status: &pending}, time.Now()))
	assert.ErrorIs(t, repo.SaveWithLock(ctx, second), shared.ErrConcurrencyConflict)

	stored, err := repo.FindByID(ctx, ar.ID)
	require.NoError(t, err)
	assert.Equal(t, finance.ReceivableStatusReceived, stored.Status)
}

func TestSupplierRepository_OptionalRecurrenceFields(t *testing.T) {
	db := setupOriginTestDB(t)
	repo := NewGormSupplierRepository(db)
	ctx := context.Background()

	plain, err := finance.NewSupplier("Paper Co")
	require.NoError(t, err)
	recurring, err := finance.NewSupplier("Cleaning Co")
	require.NoError(t, err)
	require.NoError(t, recurring.SetRecurrence(decimal.NewFromInt(450), 5))

	require.NoError(t, repo.Save(ctx, plain))
	require.NoError(t, repo.Save(ctx, recurring))

	list, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "Cleaning Co", list[0].Name)
	require.NotNil(t, list[0].MonthlyValue)
	assert.True(t, decimal.NewFromInt(450).Equal(*list[0].MonthlyValue))
	assert.Equal(t, 5, *list[0].PaymentDay)
	assert.True(t, list[0].HasBillableRecurrence())

	assert.Equal(t, "Paper Co", list[1].Name)
	assert.Nil(t, list[1].MonthlyValue)
	assert.Nil(t, list[1].PaymentDay)
	assert.False(t, list[1].HasBillableRecurrence())
}

func TestClientContractRepository_ClearLastPayment(t *testing.T) {
	db := setupOriginTestDB(t)
	repo := NewGormClientContractRepository(db)
	ctx := context.Background()

	c, err := finance.NewClientContract("Joao Souza", decimal.NewFromInt(2000), 10)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, c))

	loaded, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.NoError(t, loaded.MarkPaymentReceived(date(2025, 3, 10), time.Now()))
	require.NoError(t, repo.SaveWithLock(ctx, loaded))

	paid, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, paid.LastPaymentDate)
	assert.True(t, paid.PaidInMonth(date(2025, 3, 1)))

	active := finance.ClientContractStatusActive
	require.NoError(t, paid.ApplyUpdate(finance.ClientContractUpdate{Status: &active, ClearLastPayment: true}, time.Now()))
	require.NoError(t, repo.SaveWithLock(ctx, paid))

	cleared, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, cleared.LastPaymentDate)
	assert.Equal(t, 3, cleared.Version)

	list, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
