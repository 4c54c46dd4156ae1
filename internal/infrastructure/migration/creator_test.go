package migration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add payment columns", "add_payment_columns"},
		{"Add-Payment-Columns", "add_payment_columns"},
		{"ADD__PAYMENT__COLUMNS", "add_payment_columns"},
		{"index due 2", "index_due_2"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"_leading", "leading"},
		{"trailing_", "trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "migrations")
	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	mf, err := createMigrationAt(dir, "Index due date", "speeds up horizon scans", at)
	require.NoError(t, err)

	assert.Equal(t, "20250314093000", mf.Version)
	assert.Equal(t, filepath.Join(dir, "20250314093000_index_due_date.up.sql"), mf.UpPath)
	assert.Equal(t, filepath.Join(dir, "20250314093000_index_due_date.down.sql"), mf.DownPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Migration: Index due date")
	assert.Contains(t, string(up), "-- Created: 2025-03-14T09:30:00Z")
	assert.Contains(t, string(up), "speeds up horizon scans")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(Rollback)")

	t.Run("never overwrites", func(t *testing.T) {
		_, err := createMigrationAt(dir, "Index due date", "", at)
		assert.Error(t, err)
	})

	t.Run("rejects empty names", func(t *testing.T) {
		_, err := createMigrationAt(dir, "!!!", "", at)
		assert.Error(t, err)
	})
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{
		"000003_add_index.up.sql",
		"000003_add_index.down.sql",
		"000001_init.up.sql",
		"000001_init.down.sql",
		"000002_add_suppliers.up.sql",
		"README.md",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("--"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.up.sql"), 0o755))

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init", "000002_add_suppliers", "000003_add_index"}, names)
}

func TestListMigrations_MissingDirectory(t *testing.T) {
	names, err := ListMigrations(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRepositoryMigrationsArePaired(t *testing.T) {
	dir := filepath.Join("..", "..", "..", "migrations")
	names, err := ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, names, 4)

	for _, name := range names {
		_, err := os.Stat(filepath.Join(dir, name+downSuffix))
		assert.NoError(t, err, "missing rollback for %s", name)
	}
}
