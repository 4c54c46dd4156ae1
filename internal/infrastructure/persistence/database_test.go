package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/obligations/internal/domain/finance"
	"github.com/erp/obligations/internal/domain/shared"
	"github.com/erp/obligations/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDatabase creates a Database instance with a mocked postgres connection.
// Pings are monitored, so the ping gorm.Open issues is consumed here.
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing()

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet(), "gorm.Open should ping exactly once")
	return &Database{DB: gormDB}, mock, mockDB
}

func TestNewDatabase_SQLite(t *testing.T) {
	db, err := NewDatabase(&config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.AutoMigrate())
	assert.True(t, db.DB.Migrator().HasTable("client_contracts"))
	assert.True(t, db.DB.Migrator().HasTable("account_payables"))

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)
	assert.NoError(t, db.Ping(context.Background()))
}

func TestNewDatabase_UnsupportedDriver(t *testing.T) {
	_, err := NewDatabase(&config.DatabaseConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestDatabase_Ping(t *testing.T) {
	t.Run("successful ping", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectPing()
		assert.NoError(t, db.Ping(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed ping", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
		assert.Error(t, db.Ping(context.Background()))
	})
}

func TestGormAccountPayableRepository_SaveWithLock_Postgres(t *testing.T) {
	t.Run("returns concurrency conflict when version moved", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormAccountPayableRepository(db.DB)

		ap := &finance.AccountPayable{
			BaseAggregateRoot: shared.NewBaseAggregateRoot(),
			Description:       "Rent",
			TotalAmount:       decimal.NewFromInt(10),
			Status:            finance.PayableStatusPaid,
			SupplierName:      "Acme",
		}
		ap.ID = uuid.New()
		ap.Version = 3

		mock.ExpectExec(`UPDATE "account_payables" SET .* WHERE .*version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), ap)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates driver errors", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormAccountPayableRepository(db.DB)

		ap := &finance.AccountPayable{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
		mock.ExpectExec(`UPDATE "account_payables"`).WillReturnError(errors.New("disk full"))

		err := repo.SaveWithLock(context.Background(), ap)
		assert.ErrorContains(t, err, "disk full")
		assert.NotErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestGormSupplierRepository_FindAll_Postgres(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()
	repo := NewGormSupplierRepository(db.DB)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "version", "name", "is_active", "has_recurrence", "monthly_value", "payment_day"}).
		AddRow(id.String(), 1, "Cleaning Co", true, true, "450.00", 5)
	mock.ExpectQuery(`SELECT \* FROM "suppliers" ORDER BY name ASC, id ASC`).WillReturnRows(rows)

	list, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.True(t, decimal.NewFromInt(450).Equal(*list[0].MonthlyValue))
	assert.NoError(t, mock.ExpectationsWereMet())
}
