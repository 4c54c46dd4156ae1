package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedRow struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100"`
}

func setupTracedDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedRow{}))
	return db
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := DefaultDBTracingConfig()
	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
}

func TestDBTracingPlugin_Disabled(t *testing.T) {
	db := setupTracedDB(t)
	p := NewDBTracingPlugin(DefaultDBTracingConfig(), zap.NewNop())
	require.NoError(t, p.Register(db))
	assert.Nil(t, db.Callback().Query().Get("dues_trace:after_query"))
}

func TestDBTracingPlugin_Register(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	db := setupTracedDB(t)

	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true, DBSystem: "sqlite"}, zap.New(core))
	require.NoError(t, p.Register(db))

	assert.NotNil(t, db.Callback().Query().Get("dues_trace:after_query"))
	assert.NotNil(t, db.Callback().Update().Get("dues_trace:before_update"))
	assert.Equal(t, 1, logs.FilterMessage("Database tracing enabled").Len())

	// registering twice collides on the plugin name
	assert.Error(t, p.Register(db))
}

func TestDBTracingPlugin_Annotate(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	db := setupTracedDB(t)
	p := NewDBTracingPlugin(DBTracingConfig{Enabled: true, SlowQueryThresh: time.Nanosecond}, zap.NewNop())

	ctx, span := tp.Tracer("test").Start(context.Background(), "query")
	started := db.WithContext(ctx)
	started.Statement.Context = ctx
	p.markStart(started)
	time.Sleep(time.Millisecond)
	started.Statement.Table = "client_contracts"
	started.Statement.RowsAffected = 3
	p.annotate(started)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	attrs := spans[0].Attributes()
	assert.Contains(t, attrs, attribute.Int64("db.rows_affected", 3))
	assert.Contains(t, attrs, attribute.String("db.sql.table", "client_contracts"))
	assert.Contains(t, attrs, attribute.Bool("db.slow_query", true))
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "slow_query_warning", spans[0].Events()[0].Name)
}
