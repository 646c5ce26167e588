package database

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_MAX_CONNS", "")

	cfg := ConfigFromEnv()
	assert.Contains(t, cfg.DSN, "localhost:5432")
	assert.Equal(t, 5, cfg.MaxConns)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/fights")
	t.Setenv("DATABASE_MAX_CONNS", "12")
	t.Setenv("DATABASE_TIMEZONE", "UTC")

	cfg := ConfigFromEnv()
	assert.Equal(t, "postgres://u:p@db:5432/fights", cfg.DSN)
	assert.Equal(t, 12, cfg.MaxConns)
	assert.Equal(t, "UTC", cfg.TimeZone)
}

func TestWithSessionParams(t *testing.T) {
	dsn, err := withSessionParams("postgres://u:p@db:5432/fights?sslmode=disable", "", "")
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/fights?sslmode=disable", dsn)

	dsn, err = withSessionParams("postgres://u:p@db:5432/fights?sslmode=disable", "Europe/Berlin", "UTF8")
	require.NoError(t, err)
	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", u.Query().Get("timezone"))
	assert.Equal(t, "UTF8", u.Query().Get("client_encoding"))
	assert.Equal(t, "disable", u.Query().Get("sslmode"))

	dsn, err = withSessionParams("host=db dbname=fights", "UTC", "")
	require.NoError(t, err)
	assert.Equal(t, "host=db dbname=fights timezone='UTC'", dsn)
}

func TestQuoteConnValue(t *testing.T) {
	assert.Equal(t, "'UTC'", quoteConnValue("UTC"))
	assert.Equal(t, `'O\'Brien'`, quoteConnValue("O'Brien"))
}

func TestMigrate_UsesEmbeddedFiles(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUp
	defer func() { gooseUp = orig }()

	var gotDir string
	gooseUp = func(ctx context.Context, d *sql.DB, dir string) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, Migrate(context.Background(), db))
	assert.Equal(t, ".", gotDir)
}

func TestMigrate_PropagatesError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUp
	defer func() { gooseUp = orig }()
	gooseUp = func(context.Context, *sql.DB, string) error { return errors.New("boom") }

	err = Migrate(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate: boom")
}
